package screens

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mrsinham/pathway/cmd/pathway/wizard/components"
	"github.com/mrsinham/pathway/internal/diagnosis"
	"github.com/mrsinham/pathway/internal/report"
	"github.com/mrsinham/pathway/internal/scan"
	"github.com/mrsinham/pathway/internal/task"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	complete, back, reset int
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnComplete: func() tea.Cmd { r.complete++; return nil },
		OnBack:     func() tea.Cmd { r.back++; return nil },
		OnReset:    func() tea.Cmd { r.reset++; return nil },
	}
}

type memClipboard struct{ text string }

func (m *memClipboard) WriteAll(s string) error { m.text = s; return nil }

func newMount(t *testing.T, rec *recorder) Mount {
	t.Helper()
	g := task.NewGroup(context.Background())
	t.Cleanup(g.Cancel)
	return Mount{
		Env: Env{
			Fs:        afero.NewMemMapFs(),
			Clipboard: &memClipboard{},
			Now:       func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) },
			Results:   &Results{},
		},
		Group:     g,
		Callbacks: rec.callbacks(),
	}
}

func done(m Mount, msg tea.Msg) task.DoneMsg {
	return task.DoneMsg{Group: m.Group.ID(), Msg: msg}
}

// runScan drives the scan screen through upload and analysis, running the
// analysis command the way the program would.
func runScan(t *testing.T, m Mount, s *ScanScreen) {
	t.Helper()
	s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, scan.StageUploading, s.Stage())

	_, cmd := s.Update(done(m, uploadedMsg{}))
	require.Equal(t, scan.StageAnalyzing, s.Stage())
	require.NotNil(t, cmd)

	msg, ok := cmd().(task.DoneMsg)
	require.True(t, ok, "analysis should yield a DoneMsg")
	s.Update(msg)
	require.Equal(t, scan.StageComplete, s.Stage())
}

func TestScanScreenStages(t *testing.T) {
	rec := &recorder{}
	m := newMount(t, rec)
	s := NewScanScreen(m)

	s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, s.Busy())
	assert.Contains(t, s.View(), "Uploading...")

	// Enter while busy must not restart the upload or complete the phase.
	s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, scan.StageUploading, s.Stage())
	assert.Zero(t, rec.complete)

	_, cmd := s.Update(done(m, uploadedMsg{}))
	require.NotNil(t, cmd)
	s.Update(cmd())
	require.Equal(t, scan.StageComplete, s.Stage())
	assert.Equal(t, "3 documents successfully analyzed", s.Result().Summary())
	assert.Contains(t, s.View(), "Patient_Records.pdf")

	s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 1, rec.complete)
	assert.Len(t, m.Results.Scan.Documents, 3)
}

func TestScanScreenDetectsInputs(t *testing.T) {
	m := newMount(t, &recorder{})
	require.NoError(t, afero.WriteFile(m.Fs, "case/report.pdf", []byte("%PDF-1.4\n"), 0o644))
	require.NoError(t, afero.WriteFile(m.Fs, "case/photo.jpg", []byte{0xFF, 0xD8, 0xFF, 0xE0}, 0o644))
	require.NoError(t, afero.WriteFile(m.Fs, "case/notes.txt", []byte("hello"), 0o644))
	m.Inputs = []string{"case", "missing.pdf"}
	s := NewScanScreen(m)

	runScan(t, m, s)

	res := s.Result()
	assert.False(t, res.Placeholder)
	require.Len(t, res.Documents, 2)
	assert.Equal(t, "photo.jpg", res.Documents[0].Name)
	assert.Equal(t, "report.pdf", res.Documents[1].Name)
	assert.Equal(t, []scan.Skipped{
		{Path: "missing.pdf", Reason: "not found"},
		{Path: "case/notes.txt", Reason: "unsupported format"},
	}, res.Skipped)
}

func TestScanScreenIgnoresCancelledSteps(t *testing.T) {
	m := newMount(t, &recorder{})
	s := NewScanScreen(m)
	s.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m.Group.Cancel()
	s.Update(done(m, uploadedMsg{}))
	assert.Equal(t, scan.StageUploading, s.Stage())
}

func TestScanScreenWithoutBack(t *testing.T) {
	m := newMount(t, &recorder{})
	m.Callbacks.OnBack = nil
	s := NewScanScreen(m)

	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd, "esc on the first phase should do nothing")
}

func TestReviewScreenChatAndNotes(t *testing.T) {
	rec := &recorder{}
	m := newMount(t, rec)
	s := NewReviewScreen(m)

	s.input.SetValue("   ")
	s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, s.Session().Messages, 1, "blank message must be ignored")

	s.input.SetValue("opacity in the left lung")
	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd, "sending should schedule the reply")
	assert.True(t, s.Busy())
	assert.Empty(t, s.input.Value())

	s.Update(done(m, replyMsg{}))
	msgs := s.Session().Messages
	require.Len(t, msgs, 3)
	assert.Equal(t, "Thank you for your observation. I've added it to our analysis.", msgs[2].Text)
	assert.False(t, s.Busy())

	s.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, FocusNotes, s.Focus())
	s.input.SetValue("compare with prior scan")
	s.Update(tea.KeyMsg{Type: tea.KeyEnter})

	s.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	require.Equal(t, 1, rec.complete)
	assert.Equal(t, []string{"compare with prior scan"}, m.Results.Notes)
	assert.Equal(t, []string{"opacity in the left lung"}, m.Results.Observations)

	s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, 1, rec.back)
}

func TestDiagnoseScreenSections(t *testing.T) {
	rec := &recorder{}
	m := newMount(t, rec)
	s := NewDiagnoseScreen(m)

	s.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	require.Equal(t, diagnosis.SectionPlan, s.Workspace().Section)
	s.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	require.Equal(t, diagnosis.SectionDiagnose, s.Workspace().Section)

	s.Workspace().Diagnosis.Primary = "Pneumonia"
	s.completeSection()
	assert.True(t, s.Workspace().DiagnoseComplete)
	require.Equal(t, diagnosis.SectionPlan, s.Workspace().Section)

	s.Workspace().Plan.Treatment = "Antibiotics"
	cmd := s.completeSection()
	require.NotNil(t, cmd)
	assert.True(t, s.Busy())
	assert.Zero(t, rec.complete, "OnComplete must wait for the confirmation delay")

	s.Update(done(m, planConfirmedMsg{}))
	assert.Equal(t, 1, rec.complete)
	assert.Equal(t, "Pneumonia", m.Results.Diagnosis.Primary)
	assert.Equal(t, "Antibiotics", m.Results.Plan.Treatment)
}

func TestDiagnoseScreenBack(t *testing.T) {
	rec := &recorder{}
	s := NewDiagnoseScreen(newMount(t, rec))

	s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, 1, rec.back)
}

func TestFinalizeScreenFlow(t *testing.T) {
	rec := &recorder{}
	m := newMount(t, rec)
	m.Results.Scan = scan.Placeholder()
	m.Results.Diagnosis.Primary = "Pneumonia"
	s := NewFinalizeScreen(m)

	require.Len(t, s.Report().Documents, 3)
	assert.Equal(t, "Pneumonia", s.Report().Diagnosis.Primary)

	s.Do(sharePrefix + "Email")
	require.False(t, s.Report().Finalized, "sharing must not finalize")

	require.NotNil(t, s.Do(actionFinalize))
	assert.True(t, s.Busy())
	assert.Nil(t, s.Do(actionFinalize), "finalize while finalizing should be ignored")

	s.Update(done(m, finalizedMsg{}))
	assert.True(t, s.Report().Finalized)
	assert.False(t, s.Busy())

	s.Do(actionCopyLink)
	assert.True(t, strings.HasPrefix(m.Clipboard.(*memClipboard).text, report.LinkScheme))

	s.Do(actionNew)
	assert.Equal(t, 1, rec.reset)
	s.Do(actionBack)
	assert.Equal(t, 1, rec.back)
}

func TestFinalizeScreenReusesRenderer(t *testing.T) {
	s := NewFinalizeScreen(newMount(t, &recorder{}))
	first := s.renderer
	require.NotNil(t, first)

	s.Update(tea.WindowSizeMsg{Width: s.width, Height: 40})
	s.render()
	assert.Same(t, first, s.renderer, "same width must keep the renderer")

	s.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.NotSame(t, first, s.renderer)
	assert.Equal(t, 114, s.rendererWidth)
}

func TestToastCmd(t *testing.T) {
	want := report.Toast{Title: "Link copied to clipboard", Description: "Share securely with authorized personnel"}
	msg, ok := toastCmd(want)().(components.ToastMsg)
	require.True(t, ok)
	assert.Equal(t, want, report.Toast(msg))
}
