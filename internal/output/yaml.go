package output

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLWriter writes each report as a YAML document.
type YAMLWriter struct {
	w io.Writer
}

func (y *YAMLWriter) Write(report any) error {
	enc := yaml.NewEncoder(y.w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return err
	}
	return enc.Close()
}
