package markdownify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// md converts without document-level stripping so block spacing stays
// visible in expectations.
func md(t *testing.T, html string, opts ...Option) string {
	t.Helper()
	out, err := Convert(html, append([]Option{WithStripDocument(StripNone)}, opts...)...)
	require.NoError(t, err)
	return out
}

type conversionCase struct {
	name string
	html string
	opts []Option
	want string
}

func runCases(t *testing.T, cases []conversionCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, md(t, tc.html, tc.opts...))
		})
	}
}

func readTestdata(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err, "read testdata %s", name)
	return string(data)
}
