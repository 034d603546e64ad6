// Package report builds the final patient analysis report and the share
// actions offered once it is finalized.
package report

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/dustin/go-humanize"
	"github.com/mrsinham/pathway/internal/diagnosis"
	"github.com/mrsinham/pathway/internal/scan"
	"github.com/oklog/ulid/v2"
)

// DefaultFinalizeDelay is how long finalization takes.
const DefaultFinalizeDelay = 2 * time.Second

// LinkScheme prefixes share links.
const LinkScheme = "pathway://report/"

// ErrNotFinalized is returned by share actions on a draft report.
var ErrNotFinalized = errors.New("report is not finalized")

// Method is a share channel.
type Method string

const (
	MethodEmail Method = "Email"
	MethodTeam  Method = "Healthcare Team"
	MethodPrint Method = "Print"
)

// Methods lists the share channels in display order.
func Methods() []Method {
	return []Method{MethodEmail, MethodTeam, MethodPrint}
}

// Toast is a transient notification.
type Toast struct {
	Title       string
	Description string
}

// Clipboard is the subset of a system clipboard the report needs.
type Clipboard interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// SystemClipboard writes to the OS clipboard.
var SystemClipboard Clipboard = systemClipboard{}

// Report gathers what the previous phases produced.
type Report struct {
	ID           ulid.ULID
	Patient      string
	Documents    []scan.Document
	Observations []string
	Notes        []string
	Diagnosis    diagnosis.Diagnosis
	Plan         diagnosis.Plan
	Finalized    bool
	CreatedAt    time.Time
}

// New creates a draft report stamped at now.
func New(now time.Time) *Report {
	return &Report{
		ID:        ulid.MustNew(ulid.Timestamp(now), rand.Reader),
		CreatedAt: now,
	}
}

// Finalize marks the report ready to share.
func (r *Report) Finalize() Toast {
	r.Finalized = true
	return Toast{
		Title:       "Report successfully finalized",
		Description: "Your patient analysis is ready to share",
	}
}

// Link returns the share link for this report.
func (r *Report) Link() string {
	return LinkScheme + r.ID.String()
}

// Share simulates sending the report through m.
func (r *Report) Share(m Method) (Toast, error) {
	if !r.Finalized {
		return Toast{}, ErrNotFinalized
	}
	return Toast{
		Title:       "Shared via " + string(m),
		Description: "Recipients will receive secure access",
	}, nil
}

// CopyLink writes the share link to cb. A clipboard failure is reported in
// the toast and is not an error.
func (r *Report) CopyLink(cb Clipboard) (Toast, error) {
	if !r.Finalized {
		return Toast{}, ErrNotFinalized
	}
	if cb == nil {
		cb = SystemClipboard
	}
	if err := cb.WriteAll(r.Link()); err != nil {
		return Toast{
			Title:       "Link ready",
			Description: fmt.Sprintf("Clipboard unavailable (%v): %s", err, r.Link()),
		}, nil
	}
	return Toast{
		Title:       "Link copied to clipboard",
		Description: "Share securely with authorized personnel",
	}, nil
}

// Markdown renders the report preview.
func (r *Report) Markdown(now time.Time) string {
	var b strings.Builder

	b.WriteString("# Patient Analysis Report\n\n")
	status := "Draft"
	if r.Finalized {
		status = "Finalized"
	}
	fmt.Fprintf(&b, "**Report** `%s` · %s · created %s\n\n", r.ID, status, humanize.RelTime(r.CreatedAt, now, "ago", "from now"))
	if r.Patient != "" {
		fmt.Fprintf(&b, "**Patient:** %s\n\n", r.Patient)
	}

	b.WriteString("## Documents\n\n")
	if len(r.Documents) == 0 {
		b.WriteString("_None_\n\n")
	}
	for _, d := range r.Documents {
		fmt.Fprintf(&b, "- %s (%s)\n", d.Name, d.Describe())
	}
	if len(r.Documents) > 0 {
		b.WriteString("\n")
	}

	section(&b, "Observations", r.Observations)
	section(&b, "Notes", r.Notes)

	b.WriteString("## Diagnosis\n\n")
	field(&b, "Primary", r.Diagnosis.Primary)
	field(&b, "Evidence", r.Diagnosis.Evidence)
	field(&b, "Notes", r.Diagnosis.Notes)
	b.WriteString("\n## Treatment Plan\n\n")
	field(&b, "Treatment", r.Plan.Treatment)
	field(&b, "Start", r.Plan.StartDate)
	field(&b, "Duration", r.Plan.Duration)
	field(&b, "Details", r.Plan.Details)

	return b.String()
}

func section(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", title)
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
	b.WriteString("\n")
}

func field(b *strings.Builder, name, value string) {
	if value == "" {
		value = "_not provided_"
	}
	fmt.Fprintf(b, "- **%s:** %s\n", name, value)
}
