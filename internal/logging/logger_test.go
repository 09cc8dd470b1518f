package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/backmassage/mkv2mp4/internal/config"
)

func TestNewLogger_NoFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LogFile = ""
	l, err := NewLogger(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	l.Info("test message")
}

func TestNewLogger_WithFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorAlways
	cfg.LogFile = filepath.Join(dir, "logs", "mkv2mp4.log")
	l, err := NewLogger(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	l.Info("to file")
	l.Debug(false, "hidden")
	l.Debug(true, "shown")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(cfg.LogFile)
	if !bytes.Contains(b, []byte("[INFO] to file")) {
		t.Errorf("log file content: %s", string(b))
	}
	if bytes.Contains(b, []byte("hidden")) {
		t.Error("non-verbose debug line written")
	}
	if !bytes.Contains(b, []byte("[DEBUG] shown")) {
		t.Error("verbose debug line missing")
	}
	if bytes.Contains(b, []byte("\x1b[")) {
		t.Error("log file should not contain ANSI escapes")
	}
}

func TestLogger_ErrorGoesToStderr(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	l, err := NewLogger(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	var stdout, stderr bytes.Buffer
	l.stdout, l.stderr = &stdout, &stderr

	l.Warn("careful")
	l.Error("broken %d", 7)

	if !strings.Contains(stdout.String(), "[WARN] careful") {
		t.Errorf("stdout: %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "[ERROR] broken 7") {
		t.Errorf("stderr: %q", stderr.String())
	}
	if strings.Contains(stdout.String(), "broken") {
		t.Error("error line leaked to stdout")
	}
}
