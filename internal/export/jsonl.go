package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hashfinance/hashchat/internal"
)

// JSONLExporter exports transcripts in JSONL format (one message per line)
type JSONLExporter struct{}

// Export writes one JSON object per message
func (e *JSONLExporter) Export(t *internal.Transcript, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, msg := range t.Messages {
		obj := map[string]interface{}{
			"session_id": t.SessionID,
			"role":       msg.Role,
			"content":    msg.Content,
		}
		if msg.AudioPath != "" {
			obj["audio_path"] = msg.AudioPath
		}

		if err := enc.Encode(obj); err != nil {
			return fmt.Errorf("failed to encode message: %w", err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
