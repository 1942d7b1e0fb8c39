package cmd

import (
	"testing"
	"time"

	"github.com/hashfinance/hashchat/internal"
)

func TestFormatRelativeTime(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{
			name: "today",
			t:    now.Add(-2 * time.Hour),
			want: now.Add(-2 * time.Hour).Format("Today 15:04"),
		},
		{
			name: "this week",
			t:    now.Add(-3 * 24 * time.Hour),
			want: now.Add(-3 * 24 * time.Hour).Format("Mon 15:04"),
		},
		{
			name: "this year",
			t:    now.Add(-30 * 24 * time.Hour),
			want: now.Add(-30 * 24 * time.Hour).Format("Jan 02 15:04"),
		},
		{
			name: "old",
			t:    now.Add(-2 * 365 * 24 * time.Hour),
			want: now.Add(-2 * 365 * 24 * time.Hour).Format("2006-01-02"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatRelativeTime(tt.t); got != tt.want {
				t.Errorf("formatRelativeTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplaySessions(t *testing.T) {
	tests := []struct {
		name     string
		sessions []internal.Session
	}{
		{
			name:     "empty list",
			sessions: []internal.Session{},
		},
		{
			name: "single session",
			sessions: []internal.Session{
				internal.CreateTestSession("session-1714000000000", 1714000000),
			},
		},
		{
			name: "multiple sessions",
			sessions: []internal.Session{
				internal.CreateTestSession("session-1714000000000", 1714000000),
				internal.CreateTestSession("session-1713000000000", 1713000000),
			},
		},
		{
			name: "session without timestamp",
			sessions: []internal.Session{
				internal.CreateTestSession("session-1714000000000", 0),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Test that rendering doesn't panic
			displaySessions(tt.sessions)
		})
	}
}
