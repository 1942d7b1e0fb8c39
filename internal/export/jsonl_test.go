package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hashfinance/hashchat/internal"
)

func TestJSONLExporter_Export(t *testing.T) {
	transcript := testTranscript([]internal.Message{
		{ID: "msg-1", Role: "user", Content: internal.StringPtr("hi")},
		{ID: "msg-2", Role: "assistant", Content: nil, AudioPath: "audio/reply.mp3"},
	})

	var buf bytes.Buffer
	if err := (&JSONLExporter{}).Export(transcript, &buf); err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	var first map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("line 1 not valid JSON: %v", err)
	}
	if first["role"] != "user" || first["content"] != "hi" || first["session_id"] != transcript.SessionID {
		t.Errorf("line 1 = %v", first)
	}

	var second map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("line 2 not valid JSON: %v", err)
	}
	if second["content"] != nil {
		t.Errorf("pending content should encode as null, got %v", second["content"])
	}
	if second["audio_path"] != "audio/reply.mp3" {
		t.Errorf("audio_path = %v", second["audio_path"])
	}
}

func TestJSONLExporter_ExportEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONLExporter{}).Export(testTranscript(nil), &buf); err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("empty transcript should produce no output, got %q", buf.String())
	}
}
