package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hashfinance/hashchat/internal"
)

func testTranscript(messages []internal.Message) *internal.Transcript {
	return &internal.Transcript{
		SessionID:  "session-1700000000000",
		UserID:     "user-1",
		AppName:    internal.DefaultAppName,
		Messages:   messages,
		EventCount: len(messages),
	}
}

func TestMarkdownExporter_Export(t *testing.T) {
	tests := []struct {
		name       string
		transcript *internal.Transcript
		want       []string
	}{
		{
			name: "basic transcript",
			transcript: testTranscript([]internal.Message{
				{ID: "msg-1", Role: "user", Content: internal.StringPtr("How are my stocks doing?")},
				{ID: "msg-2", Role: "assistant", Content: internal.StringPtr("Your portfolio is up 2%.")},
			}),
			want: []string{
				"# Session session-1700000000000",
				"**User:** user-1",
				"**App:** hashfinance_orchestrator",
				"**Messages:** 2",
				"**User:**",
				"How are my stocks doing?",
				"**Assistant:**",
				"Your portfolio is up 2%.",
			},
		},
		{
			name: "textless assistant turn",
			transcript: testTranscript([]internal.Message{
				{ID: "msg-1", Role: "assistant", Content: nil},
			}),
			want: []string{
				"_(no text)_",
			},
		},
		{
			name: "audio reference",
			transcript: testTranscript([]internal.Message{
				{ID: "msg-1", Role: "assistant", Content: internal.StringPtr("Here is your summary."), AudioPath: "audio/reply.mp3"},
			}),
			want: []string{
				"_Audio: audio/reply.mp3_",
			},
		},
		{
			name:       "empty transcript",
			transcript: testTranscript(nil),
			want: []string{
				"**Messages:** 0",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := (&MarkdownExporter{}).Export(tt.transcript, &buf); err != nil {
				t.Fatalf("Export() error: %v", err)
			}
			out := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q\noutput:\n%s", want, out)
				}
			}
		})
	}
}
