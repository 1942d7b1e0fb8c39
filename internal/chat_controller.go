package internal

import "fmt"

// ChatPhase is the lifecycle state of the conversation pane.
type ChatPhase int

const (
	PhaseIdle ChatPhase = iota
	PhaseCreatingSession
	PhaseLoadingHistory
	PhaseReady
	PhaseSending
)

func (p ChatPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCreatingSession:
		return "creating session"
	case PhaseLoadingHistory:
		return "loading history"
	case PhaseReady:
		return "ready"
	case PhaseSending:
		return "sending"
	default:
		return "unknown"
	}
}

// Effect is an I/O action the controller asks its caller to perform. The
// controller itself never touches the network; the caller executes the
// effect against the Client and feeds the result back together with the
// effect's generation number. Results whose generation no longer matches
// (the session was switched away in the meantime) are discarded.
type Effect interface {
	Generation() int
}

// LoadHistoryEffect asks the caller to fetch and normalize a session's
// event log.
type LoadHistoryEffect struct {
	SessionID string
	UserID    string
	Gen       int
}

func (e LoadHistoryEffect) Generation() int { return e.Gen }

// CreateSessionEffect asks the caller to create a fresh session.
type CreateSessionEffect struct {
	UserID string
	Gen    int
}

func (e CreateSessionEffect) Generation() int { return e.Gen }

// SendEffect asks the caller to submit a user message.
type SendEffect struct {
	SessionID string
	UserID    string
	Text      string
	Gen       int
}

func (e SendEffect) Generation() int { return e.Gen }

// sendTxn pairs the optimistically appended user message with its
// placeholder so that success and failure handling cannot desynchronize
// them: the pair either both lands or both vanishes.
type sendTxn struct {
	userMsgID     string
	placeholderID string
}

// ChatController owns the in-memory conversation state for the active
// session: the message list, the current phase, the optimistic send
// transaction, and a one-line notice for the last failure. All methods are
// synchronous; callers drive it from a single goroutine (the UI loop).
type ChatController struct {
	userID    string
	phase     ChatPhase
	sessionID string
	gen       int
	messages  []Message
	txn       *sendTxn
	audioPath string
	notice    string
	localSeq  int
}

// NewChatController creates a controller for the given user. An empty user
// id is allowed; the controller then refuses sends and session creation.
func NewChatController(userID string) *ChatController {
	return &ChatController{userID: userID, phase: PhaseIdle}
}

// Phase returns the current lifecycle phase.
func (c *ChatController) Phase() ChatPhase { return c.phase }

// SessionID returns the concrete session id, or "" when none is usable.
func (c *ChatController) SessionID() string { return c.sessionID }

// Generation returns the current generation counter (exposed for tests).
func (c *ChatController) Generation() int { return c.gen }

// Messages returns the rendered message list. The slice is the
// controller's own; callers must not mutate it.
func (c *ChatController) Messages() []Message { return c.messages }

// Busy reports whether an operation is outstanding and input should be
// disabled.
func (c *ChatController) Busy() bool {
	return c.phase == PhaseCreatingSession || c.phase == PhaseLoadingHistory || c.phase == PhaseSending
}

// TakeNotice pops the pending one-line notice, if any.
func (c *ChatController) TakeNotice() string {
	n := c.notice
	c.notice = ""
	return n
}

// TakeAudioPath pops the playback slot filled by the last successful send.
func (c *ChatController) TakeAudioPath() string {
	p := c.audioPath
	c.audioPath = ""
	return p
}

// SetActive points the controller at a new active-session value. It bumps
// the generation counter so that any in-flight result for the previous
// session is discarded on arrival, resets the conversation state, and
// returns the effect needed to realize the new pointer (nil when there is
// nothing to do).
func (c *ChatController) SetActive(active ActiveSession) Effect {
	c.gen++
	c.messages = nil
	c.txn = nil
	c.audioPath = ""
	c.sessionID = ""

	switch {
	case active.IsUnresolved():
		c.phase = PhaseIdle
		return nil
	case active.IsNew():
		if c.userID == "" {
			c.phase = PhaseIdle
			return nil
		}
		c.phase = PhaseCreatingSession
		return CreateSessionEffect{UserID: c.userID, Gen: c.gen}
	default:
		id, _ := active.ID()
		c.sessionID = id
		c.phase = PhaseLoadingHistory
		return LoadHistoryEffect{SessionID: id, UserID: c.userID, Gen: c.gen}
	}
}

// HistoryLoaded applies the result of a LoadHistoryEffect. A failed load is
// non-fatal: the session stays usable with an empty transcript and the user
// sees a notice. Returns false when the result was stale and dropped.
func (c *ChatController) HistoryLoaded(gen int, msgs []Message, err error) bool {
	if gen != c.gen {
		LogDebug("Dropping stale history result (gen %d, current %d)", gen, c.gen)
		return false
	}
	c.phase = PhaseReady
	if err != nil {
		LogError("Failed to load session history: %v", err)
		c.messages = nil
		c.notice = "Could not load chat history."
		return true
	}
	c.messages = msgs
	return true
}

// SessionCreated applies the result of a CreateSessionEffect. On success
// the caller must pass the new id to the session list controller's
// NoteCreated so the sidebar picks it up without disturbing the order of
// untouched entries. On failure the session is unusable and input stays
// disabled.
func (c *ChatController) SessionCreated(gen int, sessionID string, err error) bool {
	if gen != c.gen {
		LogDebug("Dropping stale create result (gen %d, current %d)", gen, c.gen)
		return false
	}
	if err != nil {
		LogError("Failed to create session: %v", err)
		c.phase = PhaseIdle
		c.notice = "Could not start a new chat session."
		return true
	}
	c.sessionID = sessionID
	c.phase = PhaseReady
	c.messages = nil
	return true
}

// Send validates and stages a user submission. On acceptance it appends
// the user message and an assistant placeholder (nil content) as one
// transaction, moves to Sending, and returns the effect to execute. At most
// one send is outstanding at a time; re-entry while busy is rejected.
func (c *ChatController) Send(text string) (SendEffect, error) {
	if c.phase == PhaseSending {
		return SendEffect{}, fmt.Errorf("a message is already in flight")
	}
	if c.phase != PhaseReady || c.sessionID == "" || c.userID == "" {
		c.notice = "No active session. Please start a new chat."
		return SendEffect{}, fmt.Errorf("no active session")
	}

	userMsg := Message{
		ID:      c.nextLocalID(),
		Role:    RoleUser,
		Content: &text,
	}
	placeholder := Message{
		ID:   c.nextLocalID(),
		Role: RoleAssistant,
	}
	c.messages = append(c.messages, userMsg, placeholder)
	c.txn = &sendTxn{userMsgID: userMsg.ID, placeholderID: placeholder.ID}
	c.phase = PhaseSending

	return SendEffect{
		SessionID: c.sessionID,
		UserID:    c.userID,
		Text:      text,
		Gen:       c.gen,
	}, nil
}

// SendCompleted reconciles the outstanding send. Success rewrites the
// placeholder in place (its id is preserved) and fills the playback slot
// when the turn produced audio. Failure retracts both halves of the
// optimistic pair, restoring the exact pre-submit list. Returns false when
// the result was stale and dropped.
func (c *ChatController) SendCompleted(gen int, res *SendResult, err error) bool {
	if gen != c.gen {
		LogDebug("Dropping stale send result (gen %d, current %d)", gen, c.gen)
		return false
	}
	txn := c.txn
	c.txn = nil
	c.phase = PhaseReady
	if txn == nil {
		return true
	}

	if err != nil {
		LogError("Failed to get a response: %v", err)
		c.rollback(txn)
		c.notice = "Failed to get a response from the assistant."
		return true
	}

	for i := range c.messages {
		if c.messages[i].ID == txn.placeholderID {
			text := res.ResponseText
			c.messages[i].Content = &text
			c.messages[i].AudioPath = res.AudioPath
			break
		}
	}
	if res.AudioPath != "" {
		c.audioPath = res.AudioPath
	}
	return true
}

// rollback removes both optimistic messages of a failed send.
func (c *ChatController) rollback(txn *sendTxn) {
	kept := c.messages[:0]
	for _, m := range c.messages {
		if m.ID == txn.userMsgID || m.ID == txn.placeholderID {
			continue
		}
		kept = append(kept, m)
	}
	c.messages = kept
}

// nextLocalID generates ids for optimistically created messages. The
// "local-" prefix keeps them disjoint from the normalizer's "msg-" ids.
func (c *ChatController) nextLocalID() string {
	c.localSeq++
	return fmt.Sprintf("local-%d", c.localSeq)
}
