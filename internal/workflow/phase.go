// Package workflow implements the phase sequencer that drives the patient
// pathway: which phase is active and which phases have been completed.
package workflow

import "fmt"

// Phase identifiers, in workflow order.
const (
	PhaseScanDetect     = "scan-detect"
	PhaseReviewAnnotate = "review-annotate"
	PhaseDiagnosePlan   = "diagnose-plan"
	PhaseFinalizeShare  = "finalize-share"
)

// Phase is a static descriptor of one workflow stage.
type Phase struct {
	ID    string
	Label string
	Order int
}

// DefaultPhases returns the four pathway phases in order.
func DefaultPhases() []Phase {
	return []Phase{
		{ID: PhaseScanDetect, Label: "Scan & Detect", Order: 0},
		{ID: PhaseReviewAnnotate, Label: "Review & Annotate", Order: 1},
		{ID: PhaseDiagnosePlan, Label: "Diagnose & Plan", Order: 2},
		{ID: PhaseFinalizeShare, Label: "Finalize & Share", Order: 3},
	}
}

// ValidatePhases checks that IDs are unique and non-empty and that orders
// are 0-based, contiguous and match the slice position.
func ValidatePhases(phases []Phase) error {
	if len(phases) == 0 {
		return fmt.Errorf("at least one phase is required")
	}
	seen := make(map[string]bool, len(phases))
	for i, p := range phases {
		if p.ID == "" {
			return fmt.Errorf("phase %d: id is required", i)
		}
		if seen[p.ID] {
			return fmt.Errorf("phase %d: duplicate id %q", i, p.ID)
		}
		seen[p.ID] = true
		if p.Order != i {
			return fmt.Errorf("phase %q: order %d, want %d", p.ID, p.Order, i)
		}
	}
	return nil
}

// Color names a progress color used when rendering a phase tab.
type Color string

const (
	ColorProgress25  Color = "progress-25"
	ColorProgress50  Color = "progress-50"
	ColorProgress75  Color = "progress-75"
	ColorProgress100 Color = "progress-100"
	ColorFallback    Color = "white"
)

// PhaseColor maps a phase index to its progress color. Indices outside the
// four known phases get ColorFallback.
func PhaseColor(index int) Color {
	switch index {
	case 0:
		return ColorProgress25
	case 1:
		return ColorProgress50
	case 2:
		return ColorProgress75
	case 3:
		return ColorProgress100
	default:
		return ColorFallback
	}
}
