// Package task runs the simulated processing steps of the pathway screens
// (uploading, analyzing, finalizing) as cancellable bubbletea commands.
//
// Every mounted screen owns one Group. Unmounting the screen cancels the
// group, which stops its pending timers and makes any result that already
// raced into the message queue fail Accept.
package task

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var nextGroupID atomic.Uint64

// Sleep blocks for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// DoneMsg carries the result of a finished simulated step.
type DoneMsg struct {
	Group uint64
	Seq   uint64
	Msg   tea.Msg
}

// Group is a set of simulated steps bound to one screen mount.
type Group struct {
	id     uint64
	ctx    context.Context
	cancel context.CancelFunc

	seq     atomic.Uint64
	mu      sync.Mutex
	pending int
}

// NewGroup creates a live group derived from parent.
func NewGroup(parent context.Context) *Group {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return &Group{
		id:     nextGroupID.Add(1),
		ctx:    ctx,
		cancel: cancel,
	}
}

// ID identifies the group in DoneMsg values.
func (g *Group) ID() uint64 { return g.id }

// Go returns a command that waits d and then yields a DoneMsg wrapping msg.
// If the group is cancelled first the command yields nil.
func (g *Group) Go(d time.Duration, msg tea.Msg) tea.Cmd {
	return g.Run(d, func() tea.Msg { return msg })
}

// Run is like Go but computes the result with work after the wait, off the
// event loop. work is skipped when the group is cancelled during the wait,
// and its result is dropped when the group is cancelled while it runs.
func (g *Group) Run(d time.Duration, work func() tea.Msg) tea.Cmd {
	seq := g.seq.Add(1)
	g.mu.Lock()
	g.pending++
	g.mu.Unlock()

	return func() tea.Msg {
		defer func() {
			g.mu.Lock()
			g.pending--
			g.mu.Unlock()
		}()

		if err := Sleep(g.ctx, d); err != nil {
			return nil
		}
		msg := work()
		if g.ctx.Err() != nil {
			return nil
		}
		return DoneMsg{Group: g.id, Seq: seq, Msg: msg}
	}
}

// Accept reports whether m was produced by this group and the group is
// still live. Stale results must be dropped by the caller.
func (g *Group) Accept(m DoneMsg) bool {
	return m.Group == g.id && g.ctx.Err() == nil
}

// Cancel stops all pending steps. It is safe to call more than once.
func (g *Group) Cancel() { g.cancel() }

// Cancelled reports whether Cancel has been called.
func (g *Group) Cancelled() bool { return g.ctx.Err() != nil }

// Pending returns the number of steps currently waiting.
func (g *Group) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pending
}
