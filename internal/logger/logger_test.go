package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew_DefaultsToInfoText(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")
	var buf bytes.Buffer
	log := New(&buf)
	if log.GetLevel() != logrus.InfoLevel {
		t.Fatalf("level=%s, want info", log.GetLevel())
	}
	log.WithField("map", "outskirts").Info("map built")
	if out := buf.String(); !strings.Contains(out, "map built") || !strings.Contains(out, "map=outskirts") {
		t.Fatalf("unexpected text output: %q", out)
	}
}

func TestNew_ReadsLevelAndJSON(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "JSON")
	var buf bytes.Buffer
	log := New(&buf)
	if log.GetLevel() != logrus.DebugLevel {
		t.Fatalf("level=%s, want debug", log.GetLevel())
	}
	log.WithField("entity", "ET3").Debug("spawn")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if line["msg"] != "spawn" || line["entity"] != "ET3" || line["level"] != "debug" {
		t.Fatalf("unexpected fields: %v", line)
	}
}

func TestNew_BadLevelFallsBack(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")
	if lvl := New(&bytes.Buffer{}).GetLevel(); lvl != logrus.InfoLevel {
		t.Fatalf("level=%s, want info", lvl)
	}
}

func TestQuiet_CapsAtWarn(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	var buf bytes.Buffer
	log := Quiet(&buf)
	log.Info("hidden")
	log.Warn("shown")
	if out := buf.String(); strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("unexpected output: %q", out)
	}

	t.Setenv("LOG_LEVEL", "error")
	if lvl := Quiet(&buf).GetLevel(); lvl != logrus.ErrorLevel {
		t.Fatalf("stricter env level should win, got %s", lvl)
	}
}
