package screens

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mrsinham/pathway/internal/config"
	"github.com/mrsinham/pathway/internal/diagnosis"
	"github.com/mrsinham/pathway/internal/report"
	"github.com/mrsinham/pathway/internal/scan"
	"github.com/mrsinham/pathway/internal/task"
	"github.com/spf13/afero"
)

// Screen is the view mounted for one workflow phase.
type Screen interface {
	tea.Model
	// Busy reports whether a simulated step is running.
	Busy() bool
}

// Callbacks are the navigation hooks a screen may invoke. A nil hook is
// not offered on that phase.
type Callbacks struct {
	OnComplete func() tea.Cmd
	OnBack     func() tea.Cmd
	OnReset    func() tea.Cmd
}

func call(f func() tea.Cmd) tea.Cmd {
	if f == nil {
		return nil
	}
	return f()
}

// Results is what finished phases hand forward. Each screen writes its own
// part when it completes; only the finalize screen reads the rest.
type Results struct {
	Scan         scan.Result
	Observations []string
	Notes        []string
	Diagnosis    diagnosis.Diagnosis
	Plan         diagnosis.Plan
}

// Env is shared by every mount.
type Env struct {
	Fs        afero.Fs
	Inputs    []string
	Delays    config.Delays
	Clipboard report.Clipboard
	Now       func() time.Time
	Results   *Results
}

// Mount is the per-mount context handed to a screen constructor.
type Mount struct {
	Env
	Group     *task.Group
	Callbacks Callbacks
}

func (m Mount) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}
