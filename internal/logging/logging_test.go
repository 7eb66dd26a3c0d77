package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"sohd/internal/config"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"":      zerolog.InfoLevel,
		"debug": zerolog.DebugLevel,
		"INFO":  zerolog.InfoLevel,
		"warn":  zerolog.WarnLevel,
		"error": zerolog.ErrorLevel,
		"off":   zerolog.Disabled,
		"weird": zerolog.InfoLevel, // default
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, c := NewWithWriter(config.LogConfig{Level: "info", Format: "json"}, "api", &buf)
	defer c.Close()
	l.Debug().Msg("hidden")
	l.Info().Str("k", "v").Msg("shown")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &m); err != nil {
		t.Fatalf("json: %v", err)
	}
	if m["component"] != "api" || m["k"] != "v" || m["message"] != "shown" {
		t.Fatalf("unexpected entry: %v", m)
	}
}

func TestNewWithWriter_FileSink(t *testing.T) {
	var buf bytes.Buffer
	p := filepath.Join(t.TempDir(), "sohd.log")
	l, c := NewWithWriter(config.LogConfig{Level: "debug", Format: "console", File: p, MaxSizeMB: 1}, "ui", &buf)
	l.Info().Msg("to both")
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(b), `"message":"to both"`) {
		t.Fatalf("file sink missing entry: %q", string(b))
	}
	if !strings.Contains(buf.String(), "to both") {
		t.Fatalf("console missing entry: %q", buf.String())
	}
}
