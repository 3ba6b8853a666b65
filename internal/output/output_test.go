package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type testReport struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

func (r testReport) String() string {
	return r.Name + "=" + string(rune('0'+r.Value))
}

// --- ParseFormat Tests ---

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		err  bool
	}{
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"jsonl", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.err {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("ParseFormat(%q) error = %v, want ErrUnsupportedFormat", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// --- NewWriter Factory Tests ---

func TestNewWriter(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatText, "*output.TextWriter"},
		{FormatJSON, "*output.JSONWriter"},
		{FormatYAML, "*output.YAMLWriter"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			w, err := NewWriter(&bytes.Buffer{}, tt.format)
			if err != nil {
				t.Fatalf("NewWriter() error = %v", err)
			}
			if got := typeName(w); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestNewWriter_UnsupportedFormat(t *testing.T) {
	_, err := NewWriter(&bytes.Buffer{}, Format("xml"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

// --- Writer Tests ---

func TestTextWriter_UsesStringer(t *testing.T) {
	buf := &bytes.Buffer{}
	w, _ := NewWriter(buf, FormatText)

	if err := w.Write(testReport{Name: "a", Value: 1}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if got := buf.String(); got != "a=1\n" {
		t.Errorf("got %q, want %q", got, "a=1\n")
	}
}

func TestTextWriter_FallsBackToValue(t *testing.T) {
	buf := &bytes.Buffer{}
	w, _ := NewWriter(buf, FormatText)

	if err := w.Write(42); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if got := buf.String(); got != "42\n" {
		t.Errorf("got %q, want %q", got, "42\n")
	}
}

func TestJSONWriter_Write(t *testing.T) {
	buf := &bytes.Buffer{}
	w, _ := NewWriter(buf, FormatJSON)

	if err := w.Write(testReport{Name: "<b>&", Value: 2}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var got testReport
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if got.Name != "<b>&" || got.Value != 2 {
		t.Errorf("unexpected round trip %+v", got)
	}
	if !strings.Contains(buf.String(), `"<b>&"`) {
		t.Errorf("expected unescaped HTML characters, got %s", buf.String())
	}
	if !strings.Contains(buf.String(), "\n  \"value\"") {
		t.Errorf("expected indented output, got %s", buf.String())
	}
}

func TestJSONWriter_Compact(t *testing.T) {
	buf := &bytes.Buffer{}
	w, _ := NewWriter(buf, FormatJSON, WithIndent(""))

	if err := w.Write(testReport{Name: "x", Value: 3}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if got, want := buf.String(), `{"name":"x","value":3}`+"\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestYAMLWriter_Write(t *testing.T) {
	buf := &bytes.Buffer{}
	w, _ := NewWriter(buf, FormatYAML)

	if err := w.Write(testReport{Name: "y", Value: 4}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var got testReport
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid YAML %q: %v", buf.String(), err)
	}
	if got.Name != "y" || got.Value != 4 {
		t.Errorf("unexpected round trip %+v", got)
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *TextWriter:
		return "*output.TextWriter"
	case *JSONWriter:
		return "*output.JSONWriter"
	case *YAMLWriter:
		return "*output.YAMLWriter"
	}
	return "unknown"
}
