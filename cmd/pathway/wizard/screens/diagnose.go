package screens

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/pathway/cmd/pathway/wizard/components"
	"github.com/mrsinham/pathway/internal/diagnosis"
	"github.com/mrsinham/pathway/internal/task"
)

type planConfirmedMsg struct{}

var (
	sectionActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("135")).
				Underline(true)

	sectionInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244"))
)

// DiagnoseScreen collects the diagnosis and the treatment plan.
type DiagnoseScreen struct {
	m         Mount
	ws        *diagnosis.Workspace
	form      *huh.Form
	helpPanel *components.HelpPanel
	spinner   spinner.Model
	confirm   bool
}

// NewDiagnoseScreen creates the Diagnose & Plan screen.
func NewDiagnoseScreen(m Mount) *DiagnoseScreen {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	s := &DiagnoseScreen{
		m:         m,
		ws:        diagnosis.NewWorkspace(),
		helpPanel: components.NewHelpPanel(),
		spinner:   sp,
	}
	s.form = s.newForm()
	return s
}

func (s *DiagnoseScreen) newForm() *huh.Form {
	if s.ws.Section == diagnosis.SectionPlan {
		p := &s.ws.Plan
		return huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Key("treatment").
					Title("Recommended Treatment").
					Placeholder("Enter recommended treatment").
					Value(&p.Treatment),
				huh.NewInput().
					Key("start_date").
					Title("Start Date").
					Placeholder("YYYY-MM-DD").
					Value(&p.StartDate).
					Validate(diagnosis.ValidateDate),
				huh.NewInput().
					Key("duration").
					Title("Duration").
					Placeholder("e.g., 4 weeks").
					Value(&p.Duration).
					Validate(diagnosis.ValidateDuration),
				huh.NewText().
					Key("details").
					Title("Treatment Details").
					Placeholder("Describe the treatment details, dosage, frequency, etc.").
					Value(&p.Details),
			),
		).WithShowHelp(false).WithShowErrors(true)
	}

	d := &s.ws.Diagnosis
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("primary").
				Title("Primary Diagnosis").
				Placeholder("Enter primary diagnosis").
				Value(&d.Primary),
			huh.NewText().
				Key("evidence").
				Title("Supporting Evidence").
				Placeholder("Describe the supporting evidence for diagnosis").
				Value(&d.Evidence),
			huh.NewText().
				Key("diagnosis_notes").
				Title("Additional Notes").
				Placeholder("Add any additional diagnostic notes").
				Value(&d.Notes),
		),
	).WithShowHelp(false).WithShowErrors(true)
}

// Init implements tea.Model
func (s *DiagnoseScreen) Init() tea.Cmd { return s.form.Init() }

// Busy implements Screen.
func (s *DiagnoseScreen) Busy() bool { return s.confirm }

// Workspace exposes the diagnosis and plan being edited.
func (s *DiagnoseScreen) Workspace() *diagnosis.Workspace { return s.ws }

// Switch shows the given section with a fresh form.
func (s *DiagnoseScreen) Switch(sec diagnosis.Section) tea.Cmd {
	s.ws.Switch(sec)
	s.form = s.newForm()
	return s.form.Init()
}

// Update implements tea.Model
func (s *DiagnoseScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.helpPanel.SetWidth(msg.Width / 2)

	case tea.KeyMsg:
		if s.confirm {
			return s, nil
		}
		switch msg.String() {
		case "esc":
			return s, call(s.m.Callbacks.OnBack)
		case "ctrl+t":
			if s.ws.Section == diagnosis.SectionDiagnose {
				return s, s.Switch(diagnosis.SectionPlan)
			}
			return s, s.Switch(diagnosis.SectionDiagnose)
		}

	case task.DoneMsg:
		if !s.m.Group.Accept(msg) {
			return s, nil
		}
		if _, ok := msg.Msg.(planConfirmedMsg); ok {
			s.confirm = false
			s.m.Results.Diagnosis = s.ws.Diagnosis
			s.m.Results.Plan = s.ws.Plan
			return s, call(s.m.Callbacks.OnComplete)
		}
		return s, nil

	case spinner.TickMsg:
		if s.confirm {
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

	if focused := s.form.GetFocusedField(); focused != nil {
		s.helpPanel.SetField(focused.GetKey())
	}

	if s.form.State == huh.StateCompleted {
		return s, s.completeSection()
	}

	return s, cmd
}

func (s *DiagnoseScreen) completeSection() tea.Cmd {
	if s.ws.Section == diagnosis.SectionDiagnose {
		s.ws.CompleteDiagnosis()
		s.form = s.newForm()
		return s.form.Init()
	}
	if !s.ws.CompletePlan() {
		s.form = s.newForm()
		return s.form.Init()
	}
	s.confirm = true
	return tea.Batch(s.spinner.Tick, s.m.Group.Go(s.m.Delays.PlanConfirm, planConfirmedMsg{}))
}

func (s *DiagnoseScreen) tabs() string {
	label := func(sec diagnosis.Section, title string, done bool) string {
		if done {
			title = "✓ " + title
		}
		if s.ws.Section == sec {
			return sectionActiveStyle.Render(title)
		}
		return sectionInactiveStyle.Render(title)
	}
	return label(diagnosis.SectionDiagnose, "Diagnosis", s.ws.DiagnoseComplete) +
		"   " +
		label(diagnosis.SectionPlan, "Treatment Plan", s.ws.PlanComplete)
}

// View implements tea.Model
func (s *DiagnoseScreen) View() string {
	var b strings.Builder
	b.WriteString(components.TitleStyle.Render("Diagnose & Plan"))
	b.WriteString("\n")
	b.WriteString(s.tabs())
	b.WriteString("\n\n")

	if s.confirm {
		b.WriteString(s.spinner.View() + " Saving treatment plan...")
		return b.String()
	}

	b.WriteString(s.form.View())
	b.WriteString("\n")
	b.WriteString(s.helpPanel.View())
	b.WriteString("\n\n")

	submit := "Enter: Complete diagnosis"
	if s.ws.Section == diagnosis.SectionPlan {
		submit = "Enter: Complete plan"
	}
	b.WriteString(components.HintStyle.Render(submit + " | Tab: Next field | Ctrl+T: Switch section | Esc: Back"))
	return b.String()
}
