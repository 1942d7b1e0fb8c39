package internal

// activeKind enumerates the three states of the active-session pointer.
type activeKind int

const (
	activeUnresolved activeKind = iota
	activeNew
	activeID
)

// ActiveSession is the tri-state pointer to the session the UI is showing.
// Unresolved means the initial session list has not been fetched yet; New
// means the user (or the empty-list fallback) asked for a fresh session;
// Active carries a concrete session id. The three states render similarly
// but trigger different side effects, so they are kept explicit instead of
// overloading a nullable string.
type ActiveSession struct {
	kind activeKind
	id   string
}

// UnresolvedSession returns the "not yet determined" pointer.
func UnresolvedSession() ActiveSession {
	return ActiveSession{kind: activeUnresolved}
}

// NewSessionRequested returns the "start a new session" pointer.
func NewSessionRequested() ActiveSession {
	return ActiveSession{kind: activeNew}
}

// ActiveSessionID returns a pointer to a concrete session.
func ActiveSessionID(id string) ActiveSession {
	return ActiveSession{kind: activeID, id: id}
}

// IsUnresolved reports whether the pointer has not been determined yet.
func (a ActiveSession) IsUnresolved() bool {
	return a.kind == activeUnresolved
}

// IsNew reports whether a fresh session was requested.
func (a ActiveSession) IsNew() bool {
	return a.kind == activeNew
}

// ID returns the concrete session id, if any.
func (a ActiveSession) ID() (string, bool) {
	if a.kind != activeID {
		return "", false
	}
	return a.id, true
}

// Is reports whether the pointer refers to the given session id.
func (a ActiveSession) Is(sessionID string) bool {
	return a.kind == activeID && a.id == sessionID
}

func (a ActiveSession) String() string {
	switch a.kind {
	case activeNew:
		return "<new>"
	case activeID:
		return a.id
	default:
		return "<unresolved>"
	}
}
