package internal

import "sort"

// SessionListController owns the sidebar's session collection and the
// tri-state active-session pointer. Like ChatController it performs no I/O:
// callers fetch via the Client and apply results here.
type SessionListController struct {
	sessions []Session
	active   ActiveSession
}

// NewSessionListController starts with an empty list and an unresolved
// active pointer.
func NewSessionListController() *SessionListController {
	return &SessionListController{active: UnresolvedSession()}
}

// Sessions returns the current, recency-ordered collection.
func (c *SessionListController) Sessions() []Session { return c.sessions }

// Active returns the active-session pointer.
func (c *SessionListController) Active() ActiveSession { return c.active }

// SetActive moves the pointer directly (user clicked a sidebar entry or
// asked for a new chat).
func (c *SessionListController) SetActive(a ActiveSession) {
	c.active = a
}

// Refresh replaces the collection with a freshly fetched one, sorted most
// recent first. With selectLatest the most recent session becomes active;
// when the list is empty the pointer switches to "new session" instead,
// which downstream triggers creation. Without selectLatest the pointer is
// left alone; callers use that after create/delete when they already know
// which id should end up active.
func (c *SessionListController) Refresh(sessions []Session, selectLatest bool) {
	sorted := make([]Session, len(sessions))
	copy(sorted, sessions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LastUpdateTime > sorted[j].LastUpdateTime
	})
	c.sessions = sorted

	if len(sorted) == 0 {
		c.active = NewSessionRequested()
		return
	}
	if selectLatest {
		c.active = ActiveSessionID(sorted[0].ID)
	}
}

// NoteCreated records a newly created session as active. The entry itself
// appears in the sidebar on the next refresh; the order of untouched
// entries is never disturbed here.
func (c *SessionListController) NoteCreated(sessionID string) {
	c.active = ActiveSessionID(sessionID)
}

// ShouldReselectAfterDelete reports whether deleting the given session must
// trigger reselection of the most recent one, which is the case only when
// the user deleted what they were viewing. Callers pass the result as
// selectLatest to the follow-up Refresh.
func (c *SessionListController) ShouldReselectAfterDelete(sessionID string) bool {
	return c.active.Is(sessionID)
}

// Find returns the session with the given id, if present.
func (c *SessionListController) Find(sessionID string) (Session, bool) {
	for _, s := range c.sessions {
		if s.ID == sessionID {
			return s, true
		}
	}
	return Session{}, false
}
