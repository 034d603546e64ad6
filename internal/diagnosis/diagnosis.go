// Package diagnosis holds the Diagnose & Plan phase state: a diagnosis
// section followed by a treatment plan section.
package diagnosis

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DefaultConfirmDelay is the pause between saving the plan and leaving the phase.
const DefaultConfirmDelay = time.Second

// Section is the visible half of the phase.
type Section string

const (
	SectionDiagnose Section = "diagnose"
	SectionPlan     Section = "plan"
)

// Diagnosis is the clinician's assessment.
type Diagnosis struct {
	Primary  string
	Evidence string
	Notes    string
}

// Plan is the proposed treatment.
type Plan struct {
	Treatment string
	StartDate string // YYYY-MM-DD, optional
	Duration  string // e.g. "4 weeks", optional
	Details   string
}

// Workspace tracks both sections and their completion.
type Workspace struct {
	Section          Section
	Diagnosis        Diagnosis
	Plan             Plan
	DiagnoseComplete bool
	PlanComplete     bool
}

// NewWorkspace starts on the diagnosis section.
func NewWorkspace() *Workspace {
	return &Workspace{Section: SectionDiagnose}
}

// Switch shows the given section. Either section can be opened at any time.
func (w *Workspace) Switch(s Section) {
	if s == SectionDiagnose || s == SectionPlan {
		w.Section = s
	}
}

// CompleteDiagnosis marks the diagnosis done and moves to the plan.
func (w *Workspace) CompleteDiagnosis() {
	w.DiagnoseComplete = true
	w.Section = SectionPlan
}

// CompletePlan marks the plan done. The phase should be completed after
// DefaultConfirmDelay; CompletePlan returns false if it was already done so
// the confirmation is scheduled only once.
func (w *Workspace) CompletePlan() bool {
	if w.PlanComplete {
		return false
	}
	w.PlanComplete = true
	return true
}

// ValidateDate accepts an empty value or a YYYY-MM-DD date.
func ValidateDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}

var durationPattern = regexp.MustCompile(`(?i)^\d+\s*(day|week|month|year)s?$`)

// ValidateDuration accepts an empty value or "<n> days|weeks|months|years".
func ValidateDuration(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if !durationPattern.MatchString(s) {
		return fmt.Errorf("invalid duration, e.g. 4 weeks")
	}
	return nil
}
