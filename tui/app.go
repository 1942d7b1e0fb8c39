package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/hashfinance/hashchat/internal"
)

const (
	sidebarWidth   = 32
	requestTimeout = 60 * time.Second
)

type focusArea int

const (
	focusSidebar focusArea = iota
	focusInput
)

// Messages delivered by async gateway commands. Each carries the
// generation captured when the effect was issued so the controllers can
// drop results that arrive after a session switch.
type sessionsMsg struct {
	sessions     []internal.Session
	selectLatest bool
	err          error
}

type historyMsg struct {
	gen  int
	msgs []internal.Message
	err  error
}

type createdMsg struct {
	gen int
	id  string
	err error
}

type sentMsg struct {
	gen int
	res *internal.SendResult
	err error
}

type deletedMsg struct {
	id  string
	err error
}

type audioDoneMsg struct {
	err error
}

// App is the bubbletea model for the chat interface: a session sidebar,
// the conversation viewport, and the input box. All conversation state
// lives in the two controllers; App translates key events into controller
// calls and controller effects into tea commands.
type App struct {
	client *internal.Client
	cfg    *internal.Config

	list *internal.SessionListController
	chat *internal.ChatController

	viewport viewport.Model
	input    textarea.Model
	spin     spinner.Model
	md       *glamour.TermRenderer

	focus         focusArea
	cursor        int
	width         int
	height        int
	ready         bool
	status        string
	statusIsError bool
	confirmDelete string
	quitting      bool

	initialEffect internal.Effect
	initialFetch  bool
}

// NewApp builds the chat UI. With a concrete initial session the sidebar
// refresh leaves the selection alone; otherwise the most recent session is
// selected (or a new one created when none exist).
func NewApp(client *internal.Client, cfg *internal.Config, initial internal.ActiveSession) App {
	ta := textarea.New()
	ta.Placeholder = "Ask a financial question... (enter to send)"
	ta.Prompt = "┃ "
	ta.SetHeight(3)
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("135"))

	app := App{
		client: client,
		cfg:    cfg,
		list:   internal.NewSessionListController(),
		chat:   internal.NewChatController(cfg.UserID),
		input:  ta,
		spin:   sp,
		focus:  focusInput,
	}

	if _, ok := initial.ID(); ok {
		app.list.SetActive(initial)
		app.initialEffect = app.chat.SetActive(initial)
		app.initialFetch = false
	} else {
		app.initialFetch = true
	}
	return app
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink, a.spin.Tick}
	if a.initialFetch {
		cmds = append(cmds, a.fetchSessionsCmd(true))
	} else {
		cmds = append(cmds, a.fetchSessionsCmd(false))
	}
	if a.initialEffect != nil {
		cmds = append(cmds, a.runEffect(a.initialEffect))
	}
	return tea.Batch(cmds...)
}

func (a App) fetchSessionsCmd(selectLatest bool) tea.Cmd {
	client, userID := a.client, a.cfg.UserID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		sessions, err := client.ListSessions(ctx, userID)
		return sessionsMsg{sessions: sessions, selectLatest: selectLatest, err: err}
	}
}

// runEffect executes a controller effect off the UI loop. The effect's
// generation rides along so the completion handler can detect staleness.
func (a App) runEffect(eff internal.Effect) tea.Cmd {
	client := a.client
	switch e := eff.(type) {
	case internal.LoadHistoryEffect:
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			events, err := client.FetchEvents(ctx, e.UserID, e.SessionID)
			if err != nil {
				return historyMsg{gen: e.Gen, err: err}
			}
			return historyMsg{gen: e.Gen, msgs: internal.EventsToMessages(events)}
		}
	case internal.CreateSessionEffect:
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			id, err := client.CreateSession(ctx, e.UserID)
			return createdMsg{gen: e.Gen, id: id, err: err}
		}
	case internal.SendEffect:
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			res, err := client.SendMessage(ctx, e.SessionID, e.UserID, e.Text)
			return sentMsg{gen: e.Gen, res: res, err: err}
		}
	default:
		return nil
	}
}

func (a App) deleteSessionCmd(sessionID string) tea.Cmd {
	client, userID := a.client, a.cfg.UserID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := client.DeleteSession(ctx, userID, sessionID)
		return deletedMsg{id: sessionID, err: err}
	}
}

func (a App) playAudioCmd(audioPath string) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		return audioDoneMsg{err: client.PlayAudio(ctx, audioPath)}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		a.refreshViewport()
		return a, nil

	case spinner.TickMsg:
		if !a.chat.Busy() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		a.refreshViewport()
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)

	case sessionsMsg:
		return a.handleSessions(msg)

	case historyMsg:
		a.chat.HistoryLoaded(msg.gen, msg.msgs, msg.err)
		a.takeNotice()
		a.refreshViewport()
		return a, nil

	case createdMsg:
		return a.handleCreated(msg)

	case sentMsg:
		return a.handleSent(msg)

	case deletedMsg:
		return a.handleDeleted(msg)

	case audioDoneMsg:
		if msg.err != nil {
			a.setError("Audio playback failed.")
			internal.LogWarn("Audio playback failed: %v", msg.err)
		}
		return a, nil
	}

	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Delete confirmation intercepts everything.
	if a.confirmDelete != "" {
		switch msg.String() {
		case "y", "Y":
			id := a.confirmDelete
			a.confirmDelete = ""
			return a, a.deleteSessionCmd(id)
		default:
			a.confirmDelete = ""
			a.setInfo("Deletion cancelled.")
			return a, nil
		}
	}

	switch msg.String() {
	case "ctrl+c", "esc":
		a.quitting = true
		return a, tea.Quit

	case "tab":
		if a.focus == focusSidebar {
			a.focus = focusInput
			a.input.Focus()
		} else {
			a.focus = focusSidebar
			a.input.Blur()
		}
		return a, nil

	case "ctrl+n":
		a.list.SetActive(internal.NewSessionRequested())
		eff := a.chat.SetActive(a.list.Active())
		a.takeNotice()
		a.refreshViewport()
		return a, tea.Batch(a.runEffect(eff), a.spin.Tick)

	case "ctrl+d":
		if id, ok := a.selectedSessionID(); ok {
			a.confirmDelete = id
		}
		return a, nil
	}

	if a.focus == focusSidebar {
		return a.handleSidebarKey(msg)
	}
	return a.handleInputKey(msg)
}

func (a App) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sessions := a.list.Sessions()
	switch msg.String() {
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(sessions)-1 {
			a.cursor++
		}
	case "enter":
		if a.cursor < len(sessions) {
			target := sessions[a.cursor].ID
			if !a.list.Active().Is(target) {
				a.list.SetActive(internal.ActiveSessionID(target))
				eff := a.chat.SetActive(a.list.Active())
				a.focus = focusInput
				a.input.Focus()
				a.refreshViewport()
				return a, tea.Batch(a.runEffect(eff), a.spin.Tick)
			}
			a.focus = focusInput
			a.input.Focus()
		}
	}
	return a, nil
}

func (a App) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		text := strings.TrimSpace(a.input.Value())
		if text == "" {
			return a, nil
		}
		eff, err := a.chat.Send(text)
		if err != nil {
			a.takeNotice()
			return a, nil
		}
		a.input.Reset()
		a.refreshViewport()
		return a, tea.Batch(a.runEffect(eff), a.spin.Tick)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a App) handleSessions(msg sessionsMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.setError("Could not load sessions.")
		internal.LogError("Failed to fetch sessions: %v", msg.err)
		return a, nil
	}

	a.list.Refresh(msg.sessions, msg.selectLatest)
	a.clampCursor()

	// Point the conversation at the sidebar's active session when they
	// disagree; a no-op refresh must not reload the open conversation.
	active := a.list.Active()
	if id, ok := active.ID(); ok && id == a.chat.SessionID() {
		return a, nil
	}
	if active.IsUnresolved() {
		return a, nil
	}
	eff := a.chat.SetActive(active)
	a.refreshViewport()
	return a, tea.Batch(a.runEffect(eff), a.spin.Tick)
}

func (a App) handleCreated(msg createdMsg) (tea.Model, tea.Cmd) {
	applied := a.chat.SessionCreated(msg.gen, msg.id, msg.err)
	a.takeNotice()
	a.refreshViewport()
	if !applied || msg.err != nil {
		return a, nil
	}

	// The sidebar learns the new id immediately; the refresh fills in the
	// server's entry without stealing the selection.
	a.list.NoteCreated(msg.id)
	a.setInfo("Started session " + internal.ShortSessionID(msg.id))
	return a, a.fetchSessionsCmd(false)
}

func (a App) handleSent(msg sentMsg) (tea.Model, tea.Cmd) {
	applied := a.chat.SendCompleted(msg.gen, msg.res, msg.err)
	a.takeNotice()
	a.refreshViewport()
	if !applied {
		return a, nil
	}

	if audioPath := a.chat.TakeAudioPath(); audioPath != "" {
		a.setInfo("Playing audio reply...")
		return a, a.playAudioCmd(audioPath)
	}
	return a, nil
}

func (a App) handleDeleted(msg deletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.setError("Failed to delete session.")
		internal.LogError("Failed to delete session %s: %v", msg.id, msg.err)
		return a, nil
	}

	a.setInfo("Session deleted.")
	// Only steal the selection when the user deleted the session they
	// were viewing.
	selectLatest := a.list.ShouldReselectAfterDelete(msg.id)
	return a, a.fetchSessionsCmd(selectLatest)
}

func (a *App) layout() {
	mainWidth := a.width - sidebarWidth
	if mainWidth < 20 {
		mainWidth = 20
	}
	inputHeight := 3
	chromeHeight := 2 // status bar + help line
	vpHeight := a.height - inputHeight - chromeHeight - 1
	if vpHeight < 3 {
		vpHeight = 3
	}

	if !a.ready {
		a.viewport = viewport.New(mainWidth-2, vpHeight)
		a.ready = true
	} else {
		a.viewport.Width = mainWidth - 2
		a.viewport.Height = vpHeight
	}
	a.input.SetWidth(mainWidth - 4)

	md, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(mainWidth-4))
	if err != nil {
		internal.LogWarn("Markdown renderer unavailable: %v", err)
		md = nil
	}
	a.md = md
}

// renderReply runs an assistant reply through the markdown renderer,
// falling back to the raw text when rendering is unavailable.
func (a *App) renderReply(text string) string {
	if a.md == nil {
		return text
	}
	out, err := a.md.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

func (a *App) clampCursor() {
	if n := len(a.list.Sessions()); a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) selectedSessionID() (string, bool) {
	if a.focus == focusSidebar {
		sessions := a.list.Sessions()
		if a.cursor < len(sessions) {
			return sessions[a.cursor].ID, true
		}
		return "", false
	}
	if id := a.chat.SessionID(); id != "" {
		return id, true
	}
	return "", false
}

func (a *App) takeNotice() {
	if n := a.chat.TakeNotice(); n != "" {
		a.setError(n)
	}
}

func (a *App) setError(s string) {
	a.status = s
	a.statusIsError = true
}

func (a *App) setInfo(s string) {
	a.status = s
	a.statusIsError = false
}

func (a *App) refreshViewport() {
	if !a.ready {
		return
	}
	a.viewport.SetContent(a.renderMessages())
	a.viewport.GotoBottom()
}

func (a App) View() string {
	if a.quitting {
		return ""
	}
	if !a.ready {
		return "Loading..."
	}

	sidebar := a.renderSidebar()
	main := a.renderMain()
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)

	return body + "\n" + a.renderStatusBar() + "\n" + a.renderHelp()
}

func (a App) renderSidebar() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("HashFinance") + "\n\n")

	sessions := a.list.Sessions()
	if len(sessions) == 0 {
		b.WriteString(dimStyle.Render("No sessions yet") + "\n")
	}
	for i, session := range sessions {
		label := "Session " + session.ShortID()
		mark := "  "
		if a.list.Active().Is(session.ID) {
			mark = activeMarkStyle.Render("● ")
		}
		line := mark + label + " " + dimStyle.Render(session.LastUpdate().Format("Jan 02"))
		if a.focus == focusSidebar && i == a.cursor {
			line = selectedStyle.Render(line)
		} else {
			line = normalStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	height := a.height - 2
	return sidebarStyle.Width(sidebarWidth - 2).Height(height).Render(b.String())
}

func (a App) renderMain() string {
	var b strings.Builder
	b.WriteString(a.viewport.View() + "\n")
	b.WriteString(a.input.View())
	return b.String()
}

func (a App) renderMessages() string {
	messages := a.chat.Messages()
	if len(messages) == 0 && !a.chat.Busy() {
		return welcomeStyle.Render("Welcome to HashFinance\n\nStart a conversation by typing your financial question below.")
	}

	var b strings.Builder
	for _, msg := range messages {
		if msg.Role == internal.RoleUser {
			b.WriteString(userRoleStyle.Render("You") + "\n")
			b.WriteString(msg.Text() + "\n\n")
			continue
		}

		b.WriteString(assistantRoleStyle.Render("HashFinance") + "\n")
		if msg.Pending() {
			b.WriteString(a.spin.View() + pendingStyle.Render(" thinking...") + "\n\n")
		} else {
			b.WriteString(a.renderReply(msg.Text()) + "\n")
			if msg.AudioPath != "" {
				b.WriteString(audioStyle.Render("♪ "+msg.AudioPath) + "\n")
			}
			b.WriteString("\n")
		}
	}

	if a.chat.Phase() == internal.PhaseLoadingHistory {
		b.WriteString(a.spin.View() + pendingStyle.Render(" loading history...") + "\n")
	}
	if a.chat.Phase() == internal.PhaseCreatingSession {
		b.WriteString(a.spin.View() + pendingStyle.Render(" starting a new session...") + "\n")
	}
	return b.String()
}

func (a App) renderStatusBar() string {
	if a.confirmDelete != "" {
		return noticeStyle.Render(fmt.Sprintf("Delete session %s? This cannot be undone. [y/N]", internal.ShortSessionID(a.confirmDelete)))
	}

	left := "No active session"
	if id := a.chat.SessionID(); id != "" {
		left = fmt.Sprintf("Session: %s | User: %s", internal.ShortSessionID(id), a.cfg.UserID)
	}
	if a.status != "" {
		style := statusBarStyle
		if a.statusIsError {
			style = noticeStyle
		}
		return style.Render(left + "  " + a.status)
	}
	return statusBarStyle.Render(left)
}

func (a App) renderHelp() string {
	return helpStyle.Render("  tab: focus • enter: open/send • ctrl+n: new chat • ctrl+d: delete • esc: quit")
}
