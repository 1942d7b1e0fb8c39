package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashfinance/hashchat/internal"
)

func testApp(t *testing.T, initial internal.ActiveSession) App {
	t.Helper()
	cfg := &internal.Config{
		BaseURL: "http://localhost:8000",
		UserID:  "user-test",
		AppName: internal.DefaultAppName,
	}
	client, err := internal.NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return NewApp(client, cfg, initial)
}

// update drives one Update cycle and hands back the concrete model.
func update(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	model, cmd := a.Update(msg)
	app, ok := model.(App)
	if !ok {
		t.Fatalf("Update() returned %T, want App", model)
	}
	return app, cmd
}

func TestNewApp_UnresolvedFetchesLatest(t *testing.T) {
	a := testApp(t, internal.UnresolvedSession())

	if !a.initialFetch {
		t.Error("unresolved start should fetch sessions selecting the latest")
	}
	if a.initialEffect != nil {
		t.Error("unresolved start should not carry an initial effect")
	}
}

func TestNewApp_ExplicitSessionLoadsHistory(t *testing.T) {
	a := testApp(t, internal.ActiveSessionID("session-42"))

	if a.initialFetch {
		t.Error("explicit session should not steal the selection on refresh")
	}
	eff, ok := a.initialEffect.(internal.LoadHistoryEffect)
	if !ok {
		t.Fatalf("initial effect = %T, want LoadHistoryEffect", a.initialEffect)
	}
	if eff.SessionID != "session-42" {
		t.Errorf("effect session = %q, want session-42", eff.SessionID)
	}
}

func TestUpdate_SessionsSelectLatest(t *testing.T) {
	a := testApp(t, internal.UnresolvedSession())

	a, cmd := update(t, a, sessionsMsg{
		sessions: []internal.Session{
			internal.CreateTestSession("session-old", 1000),
			internal.CreateTestSession("session-new", 2000),
		},
		selectLatest: true,
	})

	if !a.list.Active().Is("session-new") {
		t.Errorf("active = %v, want session-new", a.list.Active())
	}
	if a.chat.Phase() != internal.PhaseLoadingHistory {
		t.Errorf("phase = %v, want loading history", a.chat.Phase())
	}
	if cmd == nil {
		t.Error("selecting a session should issue a history load command")
	}
}

func TestUpdate_SessionsRefreshDoesNotReload(t *testing.T) {
	a := testApp(t, internal.ActiveSessionID("session-42"))
	genBefore := a.chat.Generation()

	a, cmd := update(t, a, sessionsMsg{
		sessions: []internal.Session{internal.CreateTestSession("session-42", 1000)},
	})

	if a.chat.Generation() != genBefore {
		t.Error("refresh of the open session must not restart its history load")
	}
	if cmd != nil {
		t.Error("no-op refresh should not issue commands")
	}
}

func TestUpdate_HistoryArrives(t *testing.T) {
	a := testApp(t, internal.ActiveSessionID("session-42"))

	msgs := []internal.Message{
		{ID: "msg-1", Role: internal.RoleUser, Content: internal.StringPtr("hello")},
	}
	a, _ = update(t, a, historyMsg{gen: a.chat.Generation(), msgs: msgs})

	if a.chat.Phase() != internal.PhaseReady {
		t.Errorf("phase = %v, want ready", a.chat.Phase())
	}
	if len(a.chat.Messages()) != 1 {
		t.Errorf("got %d messages, want 1", len(a.chat.Messages()))
	}
}

func TestUpdate_StaleHistoryDropped(t *testing.T) {
	a := testApp(t, internal.ActiveSessionID("session-42"))

	a, _ = update(t, a, historyMsg{
		gen:  a.chat.Generation() - 1,
		msgs: []internal.Message{{ID: "msg-1", Role: internal.RoleUser, Content: internal.StringPtr("stale")}},
	})

	if len(a.chat.Messages()) != 0 {
		t.Error("stale history result must be discarded")
	}
}

func TestUpdate_CreatedNotesSidebar(t *testing.T) {
	a := testApp(t, internal.NewSessionRequested())

	a, cmd := update(t, a, createdMsg{gen: a.chat.Generation(), id: "session-77"})

	if !a.list.Active().Is("session-77") {
		t.Errorf("active = %v, want session-77", a.list.Active())
	}
	if a.chat.SessionID() != "session-77" {
		t.Errorf("chat session = %q, want session-77", a.chat.SessionID())
	}
	if cmd == nil {
		t.Error("successful creation should refresh the sidebar")
	}
}

func TestUpdate_DeleteConfirmation(t *testing.T) {
	a := testApp(t, internal.ActiveSessionID("session-42"))
	a, _ = update(t, a, historyMsg{gen: a.chat.Generation()})

	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyCtrlD})
	if a.confirmDelete != "session-42" {
		t.Fatalf("confirmDelete = %q, want session-42", a.confirmDelete)
	}

	// Anything but y cancels.
	a, cmd := update(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	if a.confirmDelete != "" {
		t.Error("confirmation should be cleared after cancel")
	}
	if cmd != nil {
		t.Error("cancelled delete must not issue a command")
	}

	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyCtrlD})
	a, cmd = update(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	if cmd == nil {
		t.Error("confirmed delete should issue the delete command")
	}
}

func TestUpdate_DeleteErrorKeepsList(t *testing.T) {
	a := testApp(t, internal.ActiveSessionID("session-42"))

	a, cmd := update(t, a, deletedMsg{id: "session-42", err: errors.New("boom")})
	if cmd != nil {
		t.Error("failed delete should not trigger a refresh")
	}
	if !a.statusIsError {
		t.Error("failed delete should surface an error status")
	}
}

func TestUpdate_TabTogglesFocus(t *testing.T) {
	a := testApp(t, internal.UnresolvedSession())
	if a.focus != focusInput {
		t.Fatalf("initial focus = %v, want input", a.focus)
	}

	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyTab})
	if a.focus != focusSidebar {
		t.Errorf("focus = %v, want sidebar", a.focus)
	}

	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyTab})
	if a.focus != focusInput {
		t.Errorf("focus = %v, want input", a.focus)
	}
}

func TestUpdate_SendRejectedWithoutSession(t *testing.T) {
	a := testApp(t, internal.UnresolvedSession())
	a.input.SetValue("what about my portfolio?")

	a, cmd := update(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("send without an active session must not issue a command")
	}
	if a.status == "" {
		t.Error("rejected send should surface a notice")
	}
}

func TestUpdate_SendOptimisticPair(t *testing.T) {
	a := testApp(t, internal.ActiveSessionID("session-42"))
	a, _ = update(t, a, historyMsg{gen: a.chat.Generation()})

	a.input.SetValue("should I buy bonds?")
	a, cmd := update(t, a, tea.KeyMsg{Type: tea.KeyEnter})

	if cmd == nil {
		t.Fatal("accepted send should issue the send command")
	}
	msgs := a.chat.Messages()
	if len(msgs) != 2 {
		t.Fatalf("got %d messages after send, want optimistic pair", len(msgs))
	}
	if !msgs[1].Pending() {
		t.Error("second optimistic message should be a pending placeholder")
	}
	if a.input.Value() != "" {
		t.Error("input should be cleared after an accepted send")
	}
}
