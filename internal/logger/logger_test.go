package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func resetLogger() {
	Init(Options{})
}

func TestInit_DefaultLevelIsInfo(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Output: buf})
	defer resetLogger()

	Info("converted document")
	if !strings.Contains(buf.String(), "converted document") {
		t.Errorf("info message missing, got %q", buf.String())
	}

	buf.Reset()
	Debug("resolved renderer")
	if buf.Len() != 0 {
		t.Errorf("debug message logged at info level: %q", buf.String())
	}
}

func TestInit_Debug(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Debug: true, Output: buf})
	defer resetLogger()

	Debug("resolved renderer", "tag", "custom-tag")
	got := buf.String()
	if !strings.Contains(got, "resolved renderer") || !strings.Contains(got, "tag=custom-tag") {
		t.Errorf("got %q", got)
	}
	if !Enabled(slog.LevelDebug) {
		t.Error("Enabled(debug) = false with Debug set")
	}
}

func TestInit_QuietWinsOverDebug(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Debug: true, Quiet: true, Output: buf})
	defer resetLogger()

	Debug("d")
	Info("i")
	Warn("w")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below error, got %q", buf.String())
	}

	Error("input too large")
	if !strings.Contains(buf.String(), "input too large") {
		t.Errorf("error message missing, got %q", buf.String())
	}
}

func TestInit_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{JSON: true, Output: buf})
	defer resetLogger()

	Warn("nesting limit reached", "depth", 1000)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "nesting limit reached" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["level"] != "WARN" {
		t.Errorf("level = %v", entry["level"])
	}
	if entry["depth"] != float64(1000) {
		t.Errorf("depth = %v", entry["depth"])
	}
}

func TestSetLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	SetLogger(slog.New(slog.NewTextHandler(buf, nil)))
	defer resetLogger()

	Info("from custom logger")
	if !strings.Contains(buf.String(), "from custom logger") {
		t.Errorf("got %q", buf.String())
	}
}

func TestComponent(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Output: buf})
	defer resetLogger()

	Component("fetcher").Info("fetched")
	if !strings.Contains(buf.String(), "component=fetcher") {
		t.Errorf("got %q", buf.String())
	}
}
