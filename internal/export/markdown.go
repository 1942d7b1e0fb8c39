package export

import (
	"fmt"
	"io"

	"github.com/hashfinance/hashchat/internal"
)

// MarkdownExporter exports transcripts in Markdown format
type MarkdownExporter struct{}

// Export writes a transcript as a Markdown document
func (e *MarkdownExporter) Export(t *internal.Transcript, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# Session %s\n\n", t.SessionID)
	_, _ = fmt.Fprintf(w, "**User:** %s  \n", t.UserID)
	_, _ = fmt.Fprintf(w, "**App:** %s  \n", t.AppName)
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(t.Messages))

	_, _ = fmt.Fprintf(w, "---\n\n")

	for i, msg := range t.Messages {
		label := "User"
		if msg.Role == internal.RoleAssistant {
			label = "Assistant"
		}

		_, _ = fmt.Fprintf(w, "**%s:**\n\n", label)
		if msg.Pending() {
			_, _ = fmt.Fprintf(w, "_(no text)_\n\n")
		} else {
			_, _ = fmt.Fprintf(w, "%s\n\n", msg.Text())
		}
		if msg.AudioPath != "" {
			_, _ = fmt.Fprintf(w, "_Audio: %s_\n\n", msg.AudioPath)
		}

		if i < len(t.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
