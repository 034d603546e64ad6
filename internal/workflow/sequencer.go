package workflow

import "fmt"

// Sequencer owns the phase list and the single State of a workflow session.
// All mutation goes through Advance, GoBack, Reset and Restore.
//
// A Sequencer is not safe for concurrent use; the TUI drives it from its
// Update loop only.
type Sequencer struct {
	phases []Phase
	state  State
}

// NewSequencer creates a sequencer over phases, starting at the first phase.
func NewSequencer(phases []Phase) (*Sequencer, error) {
	if err := ValidatePhases(phases); err != nil {
		return nil, fmt.Errorf("invalid phases: %w", err)
	}
	ps := make([]Phase, len(phases))
	copy(ps, phases)
	return &Sequencer{phases: ps, state: NewState()}, nil
}

// NewDefaultSequencer creates a sequencer over DefaultPhases.
func NewDefaultSequencer() *Sequencer {
	s, err := NewSequencer(DefaultPhases())
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Sequencer) apply(action Action) error {
	next, err := Reduce(s.state, action, len(s.phases))
	if err != nil {
		return err
	}
	s.state = next
	return nil
}

// Advance completes the current phase and moves to the next one.
// Returns ErrPastEnd once the workflow is finished.
func (s *Sequencer) Advance() error { return s.apply(ActionAdvance) }

// GoBack returns to the previous phase. Returns ErrBeforeStart on the first phase.
func (s *Sequencer) GoBack() error { return s.apply(ActionGoBack) }

// Reset starts the workflow over with nothing completed.
func (s *Sequencer) Reset() {
	_ = s.apply(ActionReset)
}

// Restore replaces the state with st after validating it.
func (s *Sequencer) Restore(st State) error {
	if st.Completed == nil {
		st.Completed = make(map[int]struct{})
	}
	if err := st.Validate(len(s.phases)); err != nil {
		return fmt.Errorf("restore state: %w", err)
	}
	s.state = st.Clone()
	return nil
}

// Current returns the index of the active phase.
func (s *Sequencer) Current() int { return s.state.Current }

// CurrentPhase returns the active phase, or false when finished.
func (s *Sequencer) CurrentPhase() (Phase, bool) {
	if s.Finished() {
		return Phase{}, false
	}
	return s.phases[s.state.Current], true
}

// Finished reports whether the last phase has been advanced past.
func (s *Sequencer) Finished() bool { return s.state.Current >= len(s.phases) }

// IsFirst reports whether the active phase is the first one.
func (s *Sequencer) IsFirst() bool { return s.state.Current == 0 }

// IsLast reports whether the active phase is the last one.
func (s *Sequencer) IsLast() bool { return s.state.Current == len(s.phases)-1 }

// IsCompleted reports whether the phase at index has been completed.
// Out-of-range indices are never completed.
func (s *Sequencer) IsCompleted(index int) bool { return s.state.IsCompleted(index) }

// PhaseColor returns the progress color for the phase at index.
func (s *Sequencer) PhaseColor(index int) Color { return PhaseColor(index) }

// CompletedIndices returns completed phase indices in ascending order.
func (s *Sequencer) CompletedIndices() []int { return s.state.CompletedIndices() }

// Phases returns a copy of the phase list.
func (s *Sequencer) Phases() []Phase {
	ps := make([]Phase, len(s.phases))
	copy(ps, s.phases)
	return ps
}

// State returns a copy of the current state.
func (s *Sequencer) State() State { return s.state.Clone() }
