package internal

import (
	"time"
)

// Message roles as rendered by the client.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// RoleModel is the orchestrator's vocabulary for assistant turns.
const RoleModel = "model"

// Session represents one conversation thread owned by the orchestrator.
// All fields are server-owned; the client never mutates them, it only
// re-fetches.
type Session struct {
	ID             string         `json:"id"`
	AppName        string         `json:"appName"`
	UserID         string         `json:"userId"`
	State          map[string]any `json:"state,omitempty"`
	Events         []Event        `json:"events,omitempty"`
	LastUpdateTime float64        `json:"lastUpdateTime"`
}

// LastUpdate returns the session's update timestamp as a time.Time.
func (s *Session) LastUpdate() time.Time {
	sec := int64(s.LastUpdateTime)
	nsec := int64((s.LastUpdateTime - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec)
}

// ShortID returns the trailing id fragment used for display labels.
func (s *Session) ShortID() string {
	return ShortSessionID(s.ID)
}

// ShortSessionID returns the last 6 characters of a session id.
func ShortSessionID(id string) string {
	if len(id) <= 6 {
		return id
	}
	return id[len(id)-6:]
}

// Event is one entry in a session's append-only log.
type Event struct {
	Type    string        `json:"type,omitempty"`
	Time    string        `json:"time,omitempty"`
	Content *EventContent `json:"content,omitempty"`
}

// EventContent carries the role and payload fragments of an event.
type EventContent struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// Part is a heterogeneous payload fragment. Text is a pointer so that an
// absent text field can be told apart from an empty string.
type Part struct {
	Text             *string           `json:"text,omitempty"`
	FunctionResponse *FunctionResponse `json:"functionResponse,omitempty"`
}

// FunctionResponse is a tool-call result embedded in an event part.
type FunctionResponse struct {
	Name     string          `json:"name"`
	Response *FunctionResult `json:"response,omitempty"`
}

// FunctionResult holds the textual result of a tool call.
type FunctionResult struct {
	Result string `json:"result,omitempty"`
}

// Message is the client-derived unit rendered in the UI. Content is nil
// while the assistant's reply is still pending; that is a distinct state
// from an empty string.
type Message struct {
	ID        string  `json:"id" yaml:"id"`
	Role      string  `json:"role" yaml:"role"`
	Content   *string `json:"content" yaml:"content"`
	AudioPath string  `json:"audioPath,omitempty" yaml:"audio_path,omitempty"`
}

// Text returns the message content, or "" when no text is present.
func (m *Message) Text() string {
	if m.Content == nil {
		return ""
	}
	return *m.Content
}

// Pending reports whether the message is still awaiting a reply.
func (m *Message) Pending() bool {
	return m.Content == nil
}
