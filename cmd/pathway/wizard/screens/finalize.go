package screens

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/huh"
	"github.com/mrsinham/pathway/cmd/pathway/wizard/components"
	"github.com/mrsinham/pathway/internal/debug"
	"github.com/mrsinham/pathway/internal/report"
	"github.com/mrsinham/pathway/internal/task"
)

type finalizedMsg struct{}

const (
	actionFinalize = "finalize"
	actionCopyLink = "copy"
	actionNew      = "new"
	actionBack     = "back"
	sharePrefix    = "share:"
)

// FinalizeScreen previews the report and offers the share actions.
type FinalizeScreen struct {
	m          Mount
	report     *report.Report
	preview    viewport.Model
	form       *huh.Form
	action     string
	spinner    spinner.Model
	finalizing bool
	width      int

	renderer      *glamour.TermRenderer
	rendererWidth int
}

// NewFinalizeScreen creates the Finalize & Share screen from the results
// of the previous phases.
func NewFinalizeScreen(m Mount) *FinalizeScreen {
	r := report.New(m.now())
	if res := m.Results; res != nil {
		r.Patient = res.Scan.Patient()
		r.Documents = res.Scan.Documents
		r.Observations = res.Observations
		r.Notes = res.Notes
		r.Diagnosis = res.Diagnosis
		r.Plan = res.Plan
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	s := &FinalizeScreen{
		m:       m,
		report:  r,
		preview: viewport.New(80, 14),
		spinner: sp,
		width:   80,
	}
	s.render()
	s.form = s.newForm()
	return s
}

func (s *FinalizeScreen) newForm() *huh.Form {
	var opts []huh.Option[string]
	if !s.report.Finalized {
		opts = append(opts, huh.NewOption("Finalize report", actionFinalize))
	} else {
		for _, m := range report.Methods() {
			opts = append(opts, huh.NewOption("Share via "+string(m), sharePrefix+string(m)))
		}
		opts = append(opts,
			huh.NewOption("Copy secure link", actionCopyLink),
			huh.NewOption("Start New Analysis", actionNew),
		)
	}
	opts = append(opts, huh.NewOption("Back to diagnosis", actionBack))

	s.action = opts[0].Value
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("action").
				Title("Select an action").
				Options(opts...).
				Value(&s.action),
		),
	).WithShowHelp(false)
}

// markdownRenderer returns a renderer for the current width, reusing the
// previous one while the width is unchanged.
func (s *FinalizeScreen) markdownRenderer() (*glamour.TermRenderer, error) {
	wrap := max(s.width-6, 40)
	if s.renderer != nil && s.rendererWidth == wrap {
		return s.renderer, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return nil, err
	}
	s.renderer, s.rendererWidth = r, wrap
	return r, nil
}

func (s *FinalizeScreen) render() {
	md := s.report.Markdown(s.m.now())
	r, err := s.markdownRenderer()
	if err == nil {
		if out, rerr := r.Render(md); rerr == nil {
			md = out
		} else {
			err = rerr
		}
	}
	if err != nil {
		debug.Logf("finalize: markdown render failed: %v", err)
	}
	s.preview.SetContent(md)
}

// Init implements tea.Model
func (s *FinalizeScreen) Init() tea.Cmd { return s.form.Init() }

// Busy implements Screen.
func (s *FinalizeScreen) Busy() bool { return s.finalizing }

// Report exposes the report being finalized.
func (s *FinalizeScreen) Report() *report.Report { return s.report }

// Update implements tea.Model
func (s *FinalizeScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		resized := msg.Width != s.width
		s.width = msg.Width
		s.preview.Width = max(msg.Width-4, 40)
		if resized {
			s.render()
		}

	case tea.KeyMsg:
		if s.finalizing {
			return s, nil
		}
		switch msg.String() {
		case "esc":
			return s, call(s.m.Callbacks.OnBack)
		case "pgup", "pgdown":
			var cmd tea.Cmd
			s.preview, cmd = s.preview.Update(msg)
			return s, cmd
		}

	case task.DoneMsg:
		if !s.m.Group.Accept(msg) {
			return s, nil
		}
		if _, ok := msg.Msg.(finalizedMsg); ok {
			s.finalizing = false
			toast := s.report.Finalize()
			s.render()
			s.form = s.newForm()
			return s, tea.Batch(s.form.Init(), toastCmd(toast))
		}
		return s, nil

	case spinner.TickMsg:
		if s.finalizing {
			var cmd tea.Cmd
			s.spinner, cmd = s.spinner.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}
	if s.form.State == huh.StateCompleted {
		return s, s.Do(s.action)
	}
	return s, cmd
}

// Do runs a report action as if it had been picked in the menu.
func (s *FinalizeScreen) Do(action string) tea.Cmd {
	switch {
	case action == actionFinalize:
		if s.report.Finalized || s.finalizing {
			return nil
		}
		s.finalizing = true
		return tea.Batch(s.spinner.Tick, s.m.Group.Go(s.m.Delays.Finalize, finalizedMsg{}))

	case action == actionBack:
		return call(s.m.Callbacks.OnBack)

	case action == actionNew:
		return call(s.m.Callbacks.OnReset)

	case action == actionCopyLink:
		toast, err := s.report.CopyLink(s.m.Clipboard)
		return s.afterShare(toast, err)

	case strings.HasPrefix(action, sharePrefix):
		toast, err := s.report.Share(report.Method(strings.TrimPrefix(action, sharePrefix)))
		return s.afterShare(toast, err)
	}
	return nil
}

func (s *FinalizeScreen) afterShare(toast report.Toast, err error) tea.Cmd {
	s.form = s.newForm()
	if errors.Is(err, report.ErrNotFinalized) {
		toast = report.Toast{Title: "Finalize the report first", Description: err.Error()}
	}
	return tea.Batch(s.form.Init(), toastCmd(toast))
}

func toastCmd(t report.Toast) tea.Cmd {
	return func() tea.Msg { return components.ToastMsg(t) }
}

// View implements tea.Model
func (s *FinalizeScreen) View() string {
	var b strings.Builder
	b.WriteString(components.TitleStyle.Render("Finalize & Share"))
	b.WriteString("\n")
	b.WriteString(components.PanelStyle.Render(s.preview.View()))
	b.WriteString("\n\n")

	if s.finalizing {
		b.WriteString(s.spinner.View() + " Finalizing report...")
		return b.String()
	}

	b.WriteString(s.form.View())
	b.WriteString("\n")
	b.WriteString(components.HintStyle.Render("Enter: Select | PgUp/PgDn: Scroll report | Esc: Back"))
	return b.String()
}
