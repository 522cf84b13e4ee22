package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"
)

func TestInfoWritesJSONLine(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stdout) })

	Info("interview.turn", map[string]any{"user_id": "u1", "err": errors.New("boom")})

	var payload map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &payload); err != nil {
		t.Fatalf("decode: %v (%s)", err, buf.String())
	}
	if payload["msg"] != "interview.turn" {
		t.Fatalf("unexpected msg %v", payload["msg"])
	}
	if payload["level"] != "INFO" {
		t.Fatalf("unexpected level %v", payload["level"])
	}
	if payload["user_id"] != "u1" || payload["err"] != "boom" {
		t.Fatalf("unexpected fields %v", payload)
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("missing ts")
	}
}
