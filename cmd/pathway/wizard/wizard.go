package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/pathway/cmd/pathway/wizard/components"
	"github.com/mrsinham/pathway/cmd/pathway/wizard/screens"
	"github.com/mrsinham/pathway/internal/config"
	"github.com/mrsinham/pathway/internal/debug"
	"github.com/mrsinham/pathway/internal/report"
	"github.com/mrsinham/pathway/internal/session"
	"github.com/mrsinham/pathway/internal/task"
	"github.com/mrsinham/pathway/internal/workflow"
	"github.com/spf13/afero"
)

// Header is the application banner.
const Header = "PATIENT PATHWAY ANALYZER"

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("63")).
			Padding(0, 2)

	tabStyle = lipgloss.NewStyle().Padding(0, 1)

	dimTabStyle = tabStyle.Foreground(lipgloss.Color("240"))
)

// navMsg is emitted by a screen callback. It is dropped unless it comes
// from the currently mounted screen.
type navMsg struct {
	mount  uint64
	action workflow.Action
}

// Options configures a Wizard.
type Options struct {
	Config    config.Config
	Fs        afero.Fs
	Inputs    []string
	Clipboard report.Clipboard
	// Resume, when set, is restored into the sequencer before the first mount.
	Resume *workflow.State
	Now    func() time.Time
}

// Wizard is the main orchestrator: it owns the phase sequencer and mounts
// one screen per phase.
type Wizard struct {
	seq     *workflow.Sequencer
	env     screens.Env
	ctx     context.Context
	group   *task.Group
	screen  screens.Screen
	toast   *report.Toast
	session string
	// initCmd is the first mount's command, handed out once by Init.
	initCmd tea.Cmd

	width  int
	height int

	cancelled bool
}

// NewWizard creates a wizard positioned on the first phase, or on the
// resumed state when one is given.
func NewWizard(ctx context.Context, opts Options) (*Wizard, error) {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Clipboard == nil {
		opts.Clipboard = report.SystemClipboard
	}

	seq := workflow.NewDefaultSequencer()
	if opts.Resume != nil {
		if err := seq.Restore(*opts.Resume); err != nil {
			return nil, fmt.Errorf("resuming session: %w", err)
		}
	}

	w := &Wizard{
		seq: seq,
		env: screens.Env{
			Fs:        opts.Fs,
			Inputs:    opts.Inputs,
			Delays:    opts.Config.Delays,
			Clipboard: opts.Clipboard,
			Now:       opts.Now,
			Results:   &screens.Results{},
		},
		ctx:     ctx,
		session: opts.Config.SessionFile,
	}
	w.initCmd = w.mount()
	return w, nil
}

// callbacks builds the hooks for the phase about to be mounted.
func (w *Wizard) callbacks() screens.Callbacks {
	id := w.group.ID()
	nav := func(a workflow.Action) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return navMsg{mount: id, action: a} }
		}
	}

	var cb screens.Callbacks
	if !w.seq.IsLast() {
		cb.OnComplete = nav(workflow.ActionAdvance)
	}
	if !w.seq.IsFirst() {
		cb.OnBack = nav(workflow.ActionGoBack)
	}
	if w.seq.IsLast() {
		cb.OnReset = nav(workflow.ActionReset)
	}
	return cb
}

// mount unmounts the current screen, cancelling its pending steps, and
// mounts a fresh one for the current phase.
func (w *Wizard) mount() tea.Cmd {
	if w.group != nil {
		w.group.Cancel()
	}
	w.group = task.NewGroup(w.ctx)

	phase, ok := w.seq.CurrentPhase()
	if !ok {
		w.screen = nil
		return nil
	}

	m := screens.Mount{Env: w.env, Group: w.group, Callbacks: w.callbacks()}
	switch phase.ID {
	case workflow.PhaseScanDetect:
		w.screen = screens.NewScanScreen(m)
	case workflow.PhaseReviewAnnotate:
		w.screen = screens.NewReviewScreen(m)
	case workflow.PhaseDiagnosePlan:
		w.screen = screens.NewDiagnoseScreen(m)
	case workflow.PhaseFinalizeShare:
		w.screen = screens.NewFinalizeScreen(m)
	}
	debug.Logf("wizard: mounted %s (group %d)", phase.ID, w.group.ID())

	cmds := []tea.Cmd{w.screen.Init()}
	if w.width > 0 {
		cmds = append(cmds, w.forward(tea.WindowSizeMsg{Width: w.width, Height: w.height}))
	}
	return tea.Batch(cmds...)
}

func (w *Wizard) forward(msg tea.Msg) tea.Cmd {
	if w.screen == nil {
		return nil
	}
	model, cmd := w.screen.Update(msg)
	if s, ok := model.(screens.Screen); ok {
		w.screen = s
	}
	return cmd
}

// Init implements tea.Model.
func (w *Wizard) Init() tea.Cmd {
	cmd := w.initCmd
	w.initCmd = nil
	return cmd
}

// Update implements tea.Model.
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height

	case tea.KeyMsg:
		w.toast = nil
		switch msg.String() {
		case "ctrl+c":
			w.cancelled = true
			w.group.Cancel()
			return w, tea.Quit
		case "ctrl+s":
			w.saveSession()
			return w, nil
		}
		if w.screen == nil && msg.String() == "enter" {
			return w, w.apply(workflow.ActionReset)
		}

	case navMsg:
		if msg.mount != w.group.ID() {
			debug.Logf("wizard: dropped %s from unmounted group %d", msg.action, msg.mount)
			return w, nil
		}
		return w, w.apply(msg.action)

	case task.DoneMsg:
		if msg.Group != w.group.ID() {
			return w, nil
		}

	case components.ToastMsg:
		t := report.Toast(msg)
		w.toast = &t
		return w, nil
	}

	return w, w.forward(msg)
}

// apply runs a sequencer transition and remounts on success.
func (w *Wizard) apply(a workflow.Action) tea.Cmd {
	var err error
	switch a {
	case workflow.ActionAdvance:
		err = w.seq.Advance()
	case workflow.ActionGoBack:
		err = w.seq.GoBack()
	case workflow.ActionReset:
		w.seq.Reset()
		*w.env.Results = screens.Results{}
	}
	if err != nil {
		debug.Logf("wizard: %s ignored: %v", a, err)
		return nil
	}
	debug.Logf("wizard: %s -> phase %d, completed %v", a, w.seq.Current(), w.seq.CompletedIndices())
	return w.mount()
}

func (w *Wizard) saveSession() {
	if w.session == "" {
		w.toast = &report.Toast{Title: "Session not saved", Description: "no session file configured"}
		return
	}
	if err := session.Save(w.env.Fs, w.session, w.seq.State(), w.env.Now()); err != nil {
		debug.Logf("wizard: save session: %v", err)
		w.toast = &report.Toast{Title: "Session not saved", Description: err.Error()}
		return
	}
	w.toast = &report.Toast{Title: "Session saved", Description: w.session}
}

// View implements tea.Model.
func (w *Wizard) View() string {
	if w.cancelled {
		return "Cancelled.\n"
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(Header))
	b.WriteString("\n\n")
	b.WriteString(w.tabs())
	b.WriteString("\n\n")

	if w.screen == nil {
		b.WriteString(components.SuccessStyle.Render("✓ All phases completed"))
		b.WriteString("\n\n")
		b.WriteString(components.HintStyle.Render("Enter: Start New Analysis | Ctrl+C: Quit"))
	} else {
		b.WriteString(w.screen.View())
	}

	if w.toast != nil {
		b.WriteString("\n\n")
		b.WriteString(components.RenderToast(*w.toast))
	}
	b.WriteString("\n")
	b.WriteString(components.HintStyle.Render("Ctrl+S: Save session | Ctrl+C: Quit"))
	return b.String()
}

// tabs renders the progress bar: phases up to the current one take their
// phase color, later ones are dimmed, completed ones carry a check mark.
func (w *Wizard) tabs() string {
	phases := w.seq.Phases()
	parts := make([]string, 0, len(phases))
	for i, p := range phases {
		label := fmt.Sprintf("%d. %s", i+1, p.Label)
		if w.seq.IsCompleted(i) {
			label = "✓ " + label
		}
		style := dimTabStyle
		if i <= w.seq.Current() {
			style = tabStyle.Foreground(components.PhaseColor(w.seq.PhaseColor(i)))
			if i == w.seq.Current() {
				style = style.Bold(true).Underline(true)
			}
		}
		parts = append(parts, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// Run starts the interactive pathway analyzer.
func Run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w, err := NewWizard(ctx, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(w, tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running wizard: %w", err)
	}

	if fw, ok := finalModel.(*Wizard); ok && fw.cancelled {
		debug.Logf("wizard: quit on phase %d", fw.seq.Current())
	}
	return nil
}
