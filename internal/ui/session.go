package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Gobert4/ultrawatchtogether/internal/signaling"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SessionState is the lifecycle of the interactive view.
type SessionState int

const (
	StateLive SessionState = iota
	StateClosed
)

// EventKind discriminates session events pushed from the relay
// connection.
type EventKind int

const (
	EventChat EventKind = iota
	EventSystem
	EventViewerJoined
	EventViewerLeft
	EventHostReady
	EventHostLeft
	EventSignal
	EventError
	EventDisconnected
)

// SessionEvent is one relay-side occurrence for the view to render.
type SessionEvent struct {
	Kind    EventKind
	From    string
	Name    string
	Message string
	Ts      int64
	Size    int
}

// SessionParams seeds a session model from a join acknowledgment.
type SessionParams struct {
	RoomID   string
	SelfID   string
	SelfName string
	Role     signaling.Role
	Roster   *signaling.Roster
	HostID   string

	// OnSend is invoked from the UI loop with each chat line the user
	// submits.
	OnSend func(text string)
}

// SessionModel is the Bubble Tea model for a live room session: a
// scrolling event log, a chat input and a membership summary.
type SessionModel struct {
	roomID   string
	selfID   string
	selfName string
	role     signaling.Role

	hostID   string
	hostName string
	viewers  map[string]string

	state SessionState
	lines []string

	vp      viewport.Model
	input   textinput.Model
	spinner spinner.Model
	width   int
	height  int
	ready   bool

	events chan SessionEvent
	done   chan struct{}
	onSend func(string)

	quitting     bool
	closedRemote bool
}

// NewSessionModel builds the session view for a joined connection.
func NewSessionModel(p SessionParams) *SessionModel {
	ti := textinput.New()
	ti.Placeholder = "say something"
	ti.Prompt = "> "
	ti.PromptStyle = SelfStyle
	ti.CharLimit = 2000
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SpinnerStyle

	m := &SessionModel{
		roomID:   p.RoomID,
		selfID:   p.SelfID,
		selfName: p.SelfName,
		role:     p.Role,
		hostID:   p.HostID,
		viewers:  make(map[string]string),
		state:    StateLive,
		vp:       viewport.New(80, 12),
		input:    ti,
		spinner:  sp,
		width:    80,
		height:   24,
		events:   make(chan SessionEvent, 256),
		done:     make(chan struct{}),
		onSend:   p.OnSend,
	}

	if p.Roster != nil {
		if p.Roster.Host != nil {
			m.hostName = p.Roster.Host.Name
		}
		for _, v := range p.Roster.Viewers {
			m.viewers[v.ID] = v.Name
		}
	}
	if p.Role == signaling.RoleHost {
		m.hostID = p.SelfID
		m.hostName = p.SelfName
	}

	return m
}

// Push delivers a relay event to the view.
func (m *SessionModel) Push(ev SessionEvent) {
	select {
	case m.events <- ev:
	case <-m.done:
	}
}

// Close releases the event pipe. Call after the program has exited.
func (m *SessionModel) Close() {
	close(m.done)
}

// ClosedByRemote reports whether the session ended because the room
// closed underneath us rather than by the user leaving.
func (m *SessionModel) ClosedByRemote() bool {
	return m.closedRemote
}

func (m *SessionModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.waitForEvents())
}

func (m *SessionModel) waitForEvents() tea.Cmd {
	return func() tea.Msg {
		select {
		case ev := <-m.events:
			return ev
		case <-m.done:
			return nil
		}
	}
}

func (m *SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyEnter:
			if m.state == StateClosed {
				m.quitting = true
				return m, tea.Quit
			}
			text := strings.TrimSpace(m.input.Value())
			if text != "" && m.onSend != nil {
				m.onSend(text)
			}
			m.input.Reset()
			return m, nil
		}
		if m.state == StateClosed {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = max(3, msg.Height-6)
		m.input.Width = max(20, msg.Width-4)
		m.ready = true
		m.refreshLog()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case SessionEvent:
		m.apply(msg)
		m.refreshLog()
		cmds = append(cmds, m.waitForEvents())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.vp, cmd = m.vp.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// apply folds one relay event into the view state.
func (m *SessionModel) apply(ev SessionEvent) {
	switch ev.Kind {
	case EventChat:
		ts := time.UnixMilli(ev.Ts).Format("15:04")
		m.lines = append(m.lines, fmt.Sprintf("%s %s %s",
			MutedStyle.Render(ts),
			m.senderStyle(ev.From).Render(truncateDisplay(ev.Name, 30)+":"),
			ev.Message,
		))

	case EventSystem:
		m.lines = append(m.lines, MutedStyle.Render("· "+ev.Message))

	case EventViewerJoined:
		// Roster bookkeeping only. The matching system broadcast
		// carries the log line.
		m.viewers[ev.From] = ev.Name

	case EventViewerLeft:
		delete(m.viewers, ev.From)

	case EventHostReady:
		m.hostID = ev.From
		m.lines = append(m.lines, SuccessStyle.Render("· host is ready"))

	case EventHostLeft:
		m.state = StateClosed
		m.closedRemote = true
		m.lines = append(m.lines, WarningStyle.Render(IconWarning+" "+ev.Message))

	case EventSignal:
		m.lines = append(m.lines, MutedStyle.Render(fmt.Sprintf("%s signal from %s (%d bytes)",
			IconSignal, shortID(ev.From), ev.Size)))

	case EventError:
		m.lines = append(m.lines, ErrorStyle.Render("relay: "+ev.Message))

	case EventDisconnected:
		if m.state != StateClosed {
			m.state = StateClosed
			m.closedRemote = true
			m.lines = append(m.lines, ErrorStyle.Render(IconError+" connection lost"))
		}
	}
}

func (m *SessionModel) senderStyle(from string) lipgloss.Style {
	switch from {
	case m.selfID:
		return SelfStyle
	case m.hostID:
		return HostStyle
	default:
		return BoldStyle
	}
}

func (m *SessionModel) refreshLog() {
	m.vp.SetContent(strings.Join(m.lines, "\n"))
	m.vp.GotoBottom()
}

func (m *SessionModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	header := HeaderStyle.Render(fmt.Sprintf("%s %s · %s", IconChat, m.roomID, m.role))
	b.WriteString(header + "\n")
	b.WriteString(m.statusLine() + "\n")
	b.WriteString(m.vp.View() + "\n")

	if m.state == StateLive {
		b.WriteString(m.input.View() + "\n")
		b.WriteString(FooterStyle.Render("enter to chat · esc to leave"))
	} else {
		b.WriteString(FooterStyle.Render("press any key to exit"))
	}

	return b.String()
}

func (m *SessionModel) statusLine() string {
	if m.state == StateClosed {
		return WarningStyle.Render("room closed")
	}

	if m.role == signaling.RoleHost {
		if len(m.viewers) == 0 {
			return fmt.Sprintf("%s waiting for viewers to join...", m.spinner.View())
		}
		return fmt.Sprintf("%s hosting · %d watching", IconHost, len(m.viewers))
	}

	host := m.hostName
	if host == "" {
		host = shortID(m.hostID)
	}
	return fmt.Sprintf("%s watching with %s", IconViewer, HostStyle.Render(host))
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
