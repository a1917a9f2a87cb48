package shared

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	logger.Info("hello", "key", "value")
	out := buf.String()
	if out == "" {
		t.Fatal("logger wrote nothing")
	}
	if !bytes.Contains(buf.Bytes(), []byte("hello")) {
		t.Errorf("log output missing message: %q", out)
	}
}

func TestNewLoggerDefaultsToStderr(t *testing.T) {
	if logger := NewLogger(nil); logger == nil {
		t.Fatal("NewLogger(nil) returned nil")
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)
	child := WithLogger(logger, "component", "store")

	child.Info("msg")
	if !bytes.Contains(buf.Bytes(), []byte("component")) {
		t.Errorf("child logger output missing context: %q", buf.String())
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)
	SetLogLevel(logger, log.ErrorLevel)

	logger.Info("suppressed")
	if buf.Len() != 0 {
		t.Errorf("info logged at error level: %q", buf.String())
	}

	logger.Error("loud")
	if buf.Len() == 0 {
		t.Error("error not logged at error level")
	}
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	logger.Info("to disk")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	if !bytes.Contains(content, []byte("to disk")) {
		t.Errorf("log file missing entry: %q", content)
	}
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == "" || a == b {
		t.Errorf("GenerateID() produced %q and %q", a, b)
	}
	if len(a) != 36 {
		t.Errorf("GenerateID() length = %d, want 36", len(a))
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		ms   int
		want string
	}{
		{0, "0:00"},
		{1000, "0:01"},
		{59999, "0:59"},
		{60000, "1:00"},
		{203064, "3:23"},
		{3600000, "60:00"},
	}

	for _, tc := range tests {
		if got := FormatDuration(tc.ms); got != tc.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tc.ms, got, tc.want)
		}
	}
}
