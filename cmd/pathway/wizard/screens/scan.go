package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/pathway/cmd/pathway/wizard/components"
	"github.com/mrsinham/pathway/internal/debug"
	"github.com/mrsinham/pathway/internal/scan"
	"github.com/mrsinham/pathway/internal/task"
)

type uploadedMsg struct{}

type analyzedMsg struct {
	result scan.Result
}

// ScanScreen uploads and analyzes the input documents.
type ScanScreen struct {
	m       Mount
	stage   scan.Stage
	spinner spinner.Model
	result  scan.Result
	width   int
}

// NewScanScreen creates the Scan & Detect screen.
func NewScanScreen(m Mount) *ScanScreen {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &ScanScreen{m: m, spinner: sp}
}

// Init implements tea.Model
func (s *ScanScreen) Init() tea.Cmd { return nil }

// Busy implements Screen.
func (s *ScanScreen) Busy() bool { return s.stage.Busy() }

// Stage returns the current processing stage.
func (s *ScanScreen) Stage() scan.Stage { return s.stage }

// Result returns the analysis result once the stage is complete.
func (s *ScanScreen) Result() scan.Result { return s.result }

// Update implements tea.Model
func (s *ScanScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "u":
			switch s.stage {
			case scan.StageIdle:
				s.stage = scan.StageUploading
				debug.Logf("scan: uploading %d input(s)", len(s.m.Inputs))
				return s, tea.Batch(s.spinner.Tick, s.m.Group.Go(s.m.Delays.Upload, uploadedMsg{}))
			case scan.StageComplete:
				if msg.String() == "enter" {
					s.m.Results.Scan = s.result
					return s, call(s.m.Callbacks.OnComplete)
				}
			}
		case "esc":
			if !s.stage.Busy() {
				return s, call(s.m.Callbacks.OnBack)
			}
		}

	case task.DoneMsg:
		if !s.m.Group.Accept(msg) {
			return s, nil
		}
		switch m := msg.Msg.(type) {
		case uploadedMsg:
			s.stage = s.stage.Next()
			return s, s.analyze()
		case analyzedMsg:
			s.result = m.result
			s.stage = s.stage.Next()
			debug.Logf("scan: %s, %d skipped", s.result.Summary(), len(s.result.Skipped))
		}

	case spinner.TickMsg:
		if s.stage.Busy() {
			var cmd tea.Cmd
			s.spinner, cmd = s.spinner.Update(msg)
			return s, cmd
		}
	}

	return s, nil
}

// analyze detects the inputs in a command so file access stays off the
// event loop.
func (s *ScanScreen) analyze() tea.Cmd {
	fs, inputs := s.m.Fs, append([]string(nil), s.m.Inputs...)
	return s.m.Group.Run(s.m.Delays.Analyze, func() tea.Msg {
		return analyzedMsg{result: scan.Detect(fs, inputs)}
	})
}

// View implements tea.Model
func (s *ScanScreen) View() string {
	var b strings.Builder

	b.WriteString(components.TitleStyle.Render("Scan & Detect"))
	b.WriteString("\n")

	switch s.stage {
	case scan.StageIdle:
		drop := []string{
			s.stage.Label(),
			components.MutedStyle.Render("Supported formats: " + scan.SupportedFormats),
		}
		if len(s.m.Inputs) == 0 {
			drop = append(drop, components.MutedStyle.Render("No files given, demonstration documents will be used"))
		}
		for _, in := range s.m.Inputs {
			drop = append(drop, "  "+in)
		}
		b.WriteString(components.PanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, drop...)))
		b.WriteString("\n\n")
		b.WriteString(components.HintStyle.Render("Enter: Upload"))

	case scan.StageUploading, scan.StageAnalyzing:
		b.WriteString(components.PanelStyle.Render(s.spinner.View() + " " + s.stage.Label()))

	case scan.StageComplete:
		b.WriteString(s.viewResult())
		b.WriteString("\n\n")
		b.WriteString(components.HintStyle.Render("Enter: Continue to review"))
	}

	return b.String()
}

func (s *ScanScreen) viewResult() string {
	lines := []string{
		components.SuccessStyle.Render("✓ " + s.stage.Label()),
		s.result.Summary(),
	}
	if p := s.result.Patient(); p != "" {
		lines = append(lines, "Patient: "+p)
	}
	lines = append(lines, "")
	for i, d := range s.result.Documents {
		name := d.Name
		if i == 0 {
			name = lipgloss.NewStyle().Bold(true).Render(name)
		}
		lines = append(lines, fmt.Sprintf("• %s  %s", name, components.MutedStyle.Render(d.Describe())))
	}
	for _, sk := range s.result.Skipped {
		lines = append(lines, components.ErrorStyle.Render(fmt.Sprintf("✗ %s: %s", sk.Path, sk.Reason)))
	}
	return components.PanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
