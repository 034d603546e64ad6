package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/pathway/cmd/pathway/wizard/components"
	"github.com/mrsinham/pathway/internal/review"
	"github.com/mrsinham/pathway/internal/task"
)

type replyMsg struct{}

// ReviewFocus is the input receiving typed text.
type ReviewFocus int

const (
	FocusChat ReviewFocus = iota
	FocusNotes
)

var (
	userMsgStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	systemMsgStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// ReviewScreen is the Review & Annotate chat and notes panel.
type ReviewScreen struct {
	m        Mount
	session  *review.Session
	focus    ReviewFocus
	input    textarea.Model
	chat     viewport.Model
	replying int
}

// NewReviewScreen creates the Review & Annotate screen.
func NewReviewScreen(m Mount) *ReviewScreen {
	in := textarea.New()
	in.Placeholder = "Type your observation..."
	in.ShowLineNumbers = false
	in.SetHeight(3)
	in.SetWidth(60)
	in.Focus()

	s := &ReviewScreen{
		m:       m,
		session: review.NewSession(),
		input:   in,
		chat:    viewport.New(60, 10),
	}
	s.refreshChat()
	return s
}

// Init implements tea.Model
func (s *ReviewScreen) Init() tea.Cmd { return textarea.Blink }

// Busy implements Screen.
func (s *ReviewScreen) Busy() bool { return s.replying > 0 }

// Session exposes the chat and notes.
func (s *ReviewScreen) Session() *review.Session { return s.session }

// Focus returns the active input.
func (s *ReviewScreen) Focus() ReviewFocus { return s.focus }

// Update implements tea.Model
func (s *ReviewScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w := msg.Width - 4
		if w < 20 {
			w = 20
		}
		s.input.SetWidth(w)
		s.chat.Width = w
		s.refreshChat()

	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			s.toggleFocus()
			return s, nil
		case "enter":
			return s, s.submit()
		case "ctrl+n":
			s.m.Results.Observations = s.session.Observations()
			s.m.Results.Notes = append([]string(nil), s.session.Notes...)
			return s, call(s.m.Callbacks.OnComplete)
		case "esc":
			return s, call(s.m.Callbacks.OnBack)
		}

	case task.DoneMsg:
		if !s.m.Group.Accept(msg) {
			return s, nil
		}
		if _, ok := msg.Msg.(replyMsg); ok {
			s.replying--
			s.session.Acknowledge()
			s.refreshChat()
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ReviewScreen) toggleFocus() {
	if s.focus == FocusChat {
		s.focus = FocusNotes
		s.input.Placeholder = "Add a note..."
	} else {
		s.focus = FocusChat
		s.input.Placeholder = "Type your observation..."
	}
}

func (s *ReviewScreen) submit() tea.Cmd {
	text := s.input.Value()
	switch s.focus {
	case FocusNotes:
		if s.session.AddNote(text) {
			s.input.Reset()
		}
		return nil
	default:
		if !s.session.Send(text) {
			return nil
		}
		s.input.Reset()
		s.refreshChat()
		s.replying++
		return s.m.Group.Go(s.m.Delays.Reply, replyMsg{})
	}
}

func (s *ReviewScreen) refreshChat() {
	var lines []string
	for _, msg := range s.session.Messages {
		if msg.Sender == review.SenderUser {
			lines = append(lines, userMsgStyle.Render("You: "+msg.Text))
		} else {
			lines = append(lines, systemMsgStyle.Render("Assistant: "+msg.Text))
		}
	}
	s.chat.SetContent(lipgloss.NewStyle().Width(s.chat.Width).Render(strings.Join(lines, "\n")))
	s.chat.GotoBottom()
}

// View implements tea.Model
func (s *ReviewScreen) View() string {
	var b strings.Builder
	b.WriteString(components.TitleStyle.Render("Review & Annotate"))
	b.WriteString("\n")
	b.WriteString(components.PanelStyle.Render(s.chat.View()))
	b.WriteString("\n")

	if s.replying > 0 {
		b.WriteString(components.MutedStyle.Render("Assistant is typing..."))
		b.WriteString("\n")
	}

	label := "Chat"
	if s.focus == FocusNotes {
		label = "Notes"
	}
	b.WriteString(components.SubtitleStyle.Render(label))
	b.WriteString("\n")
	b.WriteString(s.input.View())
	b.WriteString("\n\n")

	if len(s.session.Notes) > 0 {
		b.WriteString(components.SubtitleStyle.Render(fmt.Sprintf("Notes (%d)", len(s.session.Notes))))
		b.WriteString("\n")
		for _, n := range s.session.Notes {
			b.WriteString("• " + n + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(components.HintStyle.Render("Enter: Send | Tab: Chat/Notes | Ctrl+N: Continue | Esc: Back"))
	return b.String()
}
