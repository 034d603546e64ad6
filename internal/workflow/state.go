package workflow

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrBeforeStart is returned when going back from the first phase.
	ErrBeforeStart = errors.New("already at the first phase")
	// ErrPastEnd is returned when advancing after the last phase was completed.
	ErrPastEnd = errors.New("workflow already finished")
)

// State is the mutable position of a workflow session.
//
// Current ranges over [0, numPhases]; numPhases is the finished sentinel.
// Completed holds phase indices in [0, numPhases-1].
type State struct {
	Current   int
	Completed map[int]struct{}
}

// NewState returns the initial state: first phase, nothing completed.
func NewState() State {
	return State{Completed: make(map[int]struct{})}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	c := State{Current: s.Current, Completed: make(map[int]struct{}, len(s.Completed))}
	for i := range s.Completed {
		c.Completed[i] = struct{}{}
	}
	return c
}

// IsCompleted reports whether index is in the completed set.
func (s State) IsCompleted(index int) bool {
	_, ok := s.Completed[index]
	return ok
}

// CompletedIndices returns the completed set in ascending order.
func (s State) CompletedIndices() []int {
	out := make([]int, 0, len(s.Completed))
	for i := range s.Completed {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Validate checks s against a workflow of numPhases phases.
func (s State) Validate(numPhases int) error {
	if s.Current < 0 || s.Current > numPhases {
		return fmt.Errorf("current phase %d out of range [0, %d]", s.Current, numPhases)
	}
	for i := range s.Completed {
		if i < 0 || i >= numPhases {
			return fmt.Errorf("completed phase %d out of range [0, %d]", i, numPhases-1)
		}
	}
	return nil
}

// Action is a transition applied to a State.
type Action int

const (
	ActionAdvance Action = iota
	ActionGoBack
	ActionReset
)

func (a Action) String() string {
	switch a {
	case ActionAdvance:
		return "advance"
	case ActionGoBack:
		return "go-back"
	case ActionReset:
		return "reset"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Reduce applies action to state and returns the resulting state. The input
// is never modified. On a boundary error the returned state equals the input.
//
// Advance marks the current phase completed (set semantics) and moves one
// step forward; advancing from the last phase lands on the finished
// sentinel. GoBack moves one step back and leaves completion untouched.
// Reset returns to the initial state.
func Reduce(state State, action Action, numPhases int) (State, error) {
	next := state.Clone()

	switch action {
	case ActionAdvance:
		if state.Current >= numPhases {
			return next, ErrPastEnd
		}
		next.Completed[state.Current] = struct{}{}
		next.Current++
	case ActionGoBack:
		if state.Current <= 0 {
			return next, ErrBeforeStart
		}
		next.Current--
	case ActionReset:
		next = NewState()
	default:
		return next, fmt.Errorf("unknown action %v", action)
	}

	return next, nil
}
