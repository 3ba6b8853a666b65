// Package output renders CLI reports in the format chosen on the command line.
package output

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Format represents output format types.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat is returned for a format name with no writer.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// ParseFormat resolves a user-supplied format name, ignoring case.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// Writer serializes one report per call.
type Writer interface {
	Write(report any) error
}

// WriterOption configures a writer.
type WriterOption func(*writerConfig)

type writerConfig struct {
	indent string
}

// WithIndent sets the JSON indentation. An empty string gives compact output.
func WithIndent(indent string) WriterOption {
	return func(c *writerConfig) {
		c.indent = indent
	}
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format, opts ...WriterOption) (Writer, error) {
	cfg := &writerConfig{indent: "  "}
	for _, opt := range opts {
		opt(cfg)
	}

	switch format {
	case FormatText:
		return &TextWriter{w: w}, nil
	case FormatJSON:
		return &JSONWriter{w: w, indent: cfg.indent}, nil
	case FormatYAML:
		return &YAMLWriter{w: w}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// TextWriter writes a report's String form, or its %v form when it has none.
type TextWriter struct {
	w io.Writer
}

func (t *TextWriter) Write(report any) error {
	var s string
	if str, ok := report.(fmt.Stringer); ok {
		s = str.String()
	} else {
		s = fmt.Sprintf("%v", report)
	}
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	_, err := io.WriteString(t.w, s)
	return err
}
