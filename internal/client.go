package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// FallbackResponseText is shown when a turn produced no model text at all,
// e.g. a pure side-effecting action. That is a valid outcome, not an error.
const FallbackResponseText = "Action completed."

// SendResult is what a completed turn yields: the assistant's reply plus an
// optional reference to a synthesized audio artifact.
type SendResult struct {
	ResponseText string
	AudioPath    string
}

// Client talks to the orchestrator. It covers both session CRUD and message
// submission; every operation is a single request with no retry.
type Client struct {
	baseURL string
	appName string
	userID  string
	httpc   *http.Client
}

// NewClient builds a Client from config. A missing base URL is a
// ConfigError; nothing is allowed to reach the network without one.
func NewClient(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	appName := cfg.AppName
	if appName == "" {
		appName = DefaultAppName
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		appName: appName,
		userID:  cfg.UserID,
		httpc:   &http.Client{},
	}, nil
}

// BaseURL returns the configured orchestrator base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// AudioURL resolves an artifact path returned by SendMessage to the static
// URL it is served from.
func (c *Client) AudioURL(audioPath string) string {
	return c.baseURL + "/" + strings.TrimLeft(audioPath, "/")
}

// NewSessionID generates a client-side session id. Ids are time-based; the
// orchestrator accepts whatever id the client proposes on creation.
func NewSessionID() string {
	return fmt.Sprintf("session-%d", time.Now().UnixMilli())
}

func (c *Client) sessionsURL(userID string) string {
	return fmt.Sprintf("%s/apps/%s/users/%s/sessions", c.baseURL, c.appName, userID)
}

func (c *Client) sessionURL(userID, sessionID string) string {
	return c.sessionsURL(userID) + "/" + sessionID
}

// doJSON performs one request and hands back the raw body. Any network
// failure or non-2xx status becomes a TransportError.
func (c *Client) doJSON(ctx context.Context, op, method, url string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, &TransportError{Op: op, URL: url, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	LogDebug("%s %s", method, url)
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, URL: url, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, URL: url, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{Op: op, URL: url, Status: resp.StatusCode, Body: truncateBody(data)}
	}
	return data, nil
}

func truncateBody(data []byte) string {
	const max = 200
	s := strings.TrimSpace(string(data))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

// ListSessions fetches every session owned by the user. The decoded body
// must hold well-formed sessions (non-empty id and userId) or the call
// fails with a SchemaError.
func (c *Client) ListSessions(ctx context.Context, userID string) ([]Session, error) {
	const op = "list sessions"
	data, err := c.doJSON(ctx, op, http.MethodGet, c.sessionsURL(userID), nil)
	if err != nil {
		return nil, err
	}

	var sessions []Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, &SchemaError{Op: op, Err: err}
	}
	for i := range sessions {
		if sessions[i].ID == "" || sessions[i].UserID == "" {
			return nil, &SchemaError{Op: op, Err: fmt.Errorf("session %d missing id or userId", i)}
		}
	}
	return sessions, nil
}

// CreateSession creates a new session under a client-generated id and
// returns that id. The creation body is an empty JSON object.
func (c *Client) CreateSession(ctx context.Context, userID string) (string, error) {
	sessionID := NewSessionID()
	url := c.sessionURL(userID, sessionID)
	if _, err := c.doJSON(ctx, "create session", http.MethodPost, url, []byte("{}")); err != nil {
		return "", err
	}
	return sessionID, nil
}

// DeleteSession removes a session on the orchestrator.
func (c *Client) DeleteSession(ctx context.Context, userID, sessionID string) error {
	url := c.sessionURL(userID, sessionID)
	_, err := c.doJSON(ctx, "delete session", http.MethodDelete, url, nil)
	return err
}

// FetchEvents retrieves a session's raw event log. A response without an
// events field yields an empty slice, not an error.
func (c *Client) FetchEvents(ctx context.Context, userID, sessionID string) ([]Event, error) {
	const op = "fetch session"
	data, err := c.doJSON(ctx, op, http.MethodGet, c.sessionURL(userID, sessionID), nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Events []Event `json:"events"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, &SchemaError{Op: op, Err: err}
	}
	return payload.Events, nil
}

// runRequest is the wire shape of a message submission.
type runRequest struct {
	AppName    string     `json:"app_name"`
	UserID     string     `json:"user_id"`
	SessionID  string     `json:"session_id"`
	NewMessage runMessage `json:"new_message"`
}

type runMessage struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// SendMessage submits one user message and scans the full event batch the
// orchestrator returns for that turn. The reply is the text of the last
// model event carrying a text part; absent that, a fixed fallback. The scan
// covers the whole batch, not only newly appended events: if the
// orchestrator ever echoed prior turns this could pick up a stale reply,
// but "last model text in the batch" is the contract the server defines.
// Content-shape anomalies never fail the call; only transport does.
func (c *Client) SendMessage(ctx context.Context, sessionID, userID, text string) (*SendResult, error) {
	const op = "send message"
	body, err := json.Marshal(runRequest{
		AppName:   c.appName,
		UserID:    userID,
		SessionID: sessionID,
		NewMessage: runMessage{
			Role:  RoleUser,
			Parts: []Part{{Text: &text}},
		},
	})
	if err != nil {
		return nil, &SchemaError{Op: op, Err: err}
	}

	data, err := c.doJSON(ctx, op, http.MethodPost, c.baseURL+"/run", body)
	if err != nil {
		return nil, err
	}

	var events []Event
	if err := json.Unmarshal(data, &events); err != nil {
		// An undecodable batch is "no text, no audio", not a failure.
		LogWarn("Could not decode run response: %v", err)
		return &SendResult{ResponseText: FallbackResponseText}, nil
	}

	result := &SendResult{
		ResponseText: FallbackResponseText,
		AudioPath:    ScanEventsForAudio(events),
	}
	for _, event := range events {
		if event.Content == nil || event.Content.Role != RoleModel {
			continue
		}
		for _, part := range event.Content.Parts {
			if part.Text != nil && *part.Text != "" {
				result.ResponseText = *part.Text
				break
			}
		}
	}
	return result, nil
}
