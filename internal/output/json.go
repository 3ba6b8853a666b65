package output

import (
	"encoding/json"
	"io"
)

// JSONWriter writes each report as a JSON document.
type JSONWriter struct {
	w      io.Writer
	indent string
}

func (j *JSONWriter) Write(report any) error {
	enc := json.NewEncoder(j.w)
	// Reports carry Markdown and HTML snippets; keep <, > and & readable.
	enc.SetEscapeHTML(false)
	if j.indent != "" {
		enc.SetIndent("", j.indent)
	}
	return enc.Encode(report)
}
