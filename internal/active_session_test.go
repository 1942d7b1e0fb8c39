package internal

import "testing"

func TestActiveSessionStates(t *testing.T) {
	unresolved := UnresolvedSession()
	if !unresolved.IsUnresolved() || unresolved.IsNew() {
		t.Error("UnresolvedSession() state wrong")
	}
	if _, ok := unresolved.ID(); ok {
		t.Error("unresolved pointer should carry no id")
	}

	fresh := NewSessionRequested()
	if !fresh.IsNew() || fresh.IsUnresolved() {
		t.Error("NewSessionRequested() state wrong")
	}

	active := ActiveSessionID("session-1")
	if active.IsNew() || active.IsUnresolved() {
		t.Error("ActiveSessionID() state wrong")
	}
	id, ok := active.ID()
	if !ok || id != "session-1" {
		t.Errorf("ID() = %q, %v", id, ok)
	}
	if !active.Is("session-1") || active.Is("session-2") {
		t.Error("Is() comparison wrong")
	}
}

func TestActiveSessionZeroValueIsUnresolved(t *testing.T) {
	var a ActiveSession
	if !a.IsUnresolved() {
		t.Error("zero value should be unresolved")
	}
}

func TestActiveSessionString(t *testing.T) {
	tests := []struct {
		a    ActiveSession
		want string
	}{
		{UnresolvedSession(), "<unresolved>"},
		{NewSessionRequested(), "<new>"},
		{ActiveSessionID("s1"), "s1"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
