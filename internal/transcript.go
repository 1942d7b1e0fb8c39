package internal

import "time"

// Transcript is a fetched conversation prepared for export: the normalized
// message list plus enough context to identify where it came from.
type Transcript struct {
	SessionID  string    `json:"session_id" yaml:"session_id"`
	UserID     string    `json:"user_id" yaml:"user_id"`
	AppName    string    `json:"app_name" yaml:"app_name"`
	FetchedAt  time.Time `json:"fetched_at" yaml:"fetched_at"`
	Messages   []Message `json:"messages" yaml:"messages"`
	EventCount int       `json:"event_count" yaml:"event_count"`
}

// NewTranscript normalizes an event log into an export-ready transcript.
func NewTranscript(cfg *Config, sessionID string, events []Event) *Transcript {
	return &Transcript{
		SessionID:  sessionID,
		UserID:     cfg.UserID,
		AppName:    cfg.AppName,
		FetchedAt:  time.Now().UTC(),
		Messages:   EventsToMessages(events),
		EventCount: len(events),
	}
}
