package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{})
	logger.Debug("hidden debug")
	logger.Info("hidden info")
	logger.Warn("shown warning")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug/info should be filtered by default, got %q", out)
	}
	if !strings.Contains(out, "shown warning") {
		t.Errorf("warning missing from %q", out)
	}

	buf.Reset()
	New(&buf, Options{Verbose: true}).Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Errorf("verbose logger dropped debug output: %q", buf.String())
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, Options{JSON: true}).Warn("legacy settings found")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if entry["level"] != "warn" {
		t.Errorf("level = %v, want warn", entry["level"])
	}
	if entry["msg"] != "legacy settings found" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Errorf("timestamp missing from %v", entry)
	}
}
