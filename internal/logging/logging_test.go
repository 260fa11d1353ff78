package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw    string
		want   logrus.Level
		wantOK bool
	}{
		{raw: "", want: logrus.InfoLevel},
		{raw: "debug", want: logrus.DebugLevel, wantOK: true},
		{raw: " WARNING ", want: logrus.WarnLevel, wantOK: true},
		{raw: "trace", want: logrus.TraceLevel, wantOK: true},
		{raw: "off", want: logrus.PanicLevel, wantOK: true},
		{raw: "loud", want: logrus.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := parseLevel(tt.raw)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("parseLevel(%q) = %v, %v; want %v, %v", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNewWritesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "debug", Output: &buf, NoColor: true})
	logger.WithFields(Fields{"image": "a.png"}).Debug("warped")

	out := buf.String()
	if !strings.Contains(out, "warped") || !strings.Contains(out, "image:a.png") {
		t.Errorf("log output = %q", out)
	}
}

func TestNewUnknownLevelWarns(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "loud", Output: &buf, NoColor: true})
	if logger.GetLevel() != logrus.InfoLevel {
		t.Errorf("level = %v, want info", logger.GetLevel())
	}
	if !strings.Contains(buf.String(), "unknown log level") {
		t.Errorf("log output = %q", buf.String())
	}
}

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facewarp.log")
	logger := New(Options{File: path, Output: &bytes.Buffer{}, NoColor: true})
	logger.Info("hello")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file = %q", data)
	}
}
