package task

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type finishedMsg struct{ label string }

func TestSleepCompletes(t *testing.T) {
	defer goleak.VerifyNone(t)

	err := Sleep(context.Background(), 5*time.Millisecond)
	require.NoError(t, err)
}

func TestSleepCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := Sleep(ctx, time.Hour)
	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSleepZeroDelay(t *testing.T) {
	require.NoError(t, Sleep(context.Background(), 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, Sleep(ctx, 0), context.Canceled)
}

func TestGroupDeliversResult(t *testing.T) {
	defer goleak.VerifyNone(t)

	g := NewGroup(context.Background())
	defer g.Cancel()

	cmd := g.Go(time.Millisecond, finishedMsg{label: "upload"})
	msg := cmd()

	done, ok := msg.(DoneMsg)
	require.True(t, ok, "expected DoneMsg, got %T", msg)
	assert.True(t, g.Accept(done))
	assert.Equal(t, finishedMsg{label: "upload"}, done.Msg)
	assert.Equal(t, 0, g.Pending())
}

func TestGroupCancelStopsPendingSteps(t *testing.T) {
	defer goleak.VerifyNone(t)

	g := NewGroup(context.Background())
	cmd := g.Go(time.Hour, finishedMsg{label: "analyze"})

	var wg sync.WaitGroup
	var got any
	wg.Add(1)
	go func() {
		defer wg.Done()
		got = cmd()
	}()

	require.Eventually(t, func() bool { return g.Pending() == 1 }, time.Second, time.Millisecond)
	g.Cancel()
	wg.Wait()

	assert.Nil(t, got)
	assert.True(t, g.Cancelled())
	assert.Equal(t, 0, g.Pending())
}

func TestGroupRejectsStaleResults(t *testing.T) {
	g := NewGroup(context.Background())
	msg := g.Go(0, finishedMsg{label: "finalize"})().(DoneMsg)

	// result was produced, then the screen unmounted before it was handled
	g.Cancel()
	assert.False(t, g.Accept(msg))
}

func TestGroupRejectsOtherGroups(t *testing.T) {
	a := NewGroup(context.Background())
	b := NewGroup(context.Background())
	defer a.Cancel()
	defer b.Cancel()

	msg := a.Go(0, finishedMsg{})().(DoneMsg)
	assert.True(t, a.Accept(msg))
	assert.False(t, b.Accept(msg))
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestParentCancellationPropagates(t *testing.T) {
	defer goleak.VerifyNone(t)

	parent, cancel := context.WithCancel(context.Background())
	g := NewGroup(parent)
	cancel()

	assert.Nil(t, g.Go(time.Hour, finishedMsg{})())
	assert.True(t, g.Cancelled())
}

func TestRunComputesResultAfterWait(t *testing.T) {
	defer goleak.VerifyNone(t)

	g := NewGroup(context.Background())
	defer g.Cancel()

	calls := 0
	msg := g.Run(time.Millisecond, func() tea.Msg {
		calls++
		return finishedMsg{label: "detect"}
	})()

	done, ok := msg.(DoneMsg)
	require.True(t, ok, "expected DoneMsg, got %T", msg)
	assert.Equal(t, finishedMsg{label: "detect"}, done.Msg)
	assert.Equal(t, 1, calls)
}

func TestRunSkipsWorkWhenCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	g := NewGroup(context.Background())
	cmd := g.Run(time.Hour, func() tea.Msg {
		t.Error("work must not run after cancel")
		return nil
	})
	g.Cancel()

	assert.Nil(t, cmd())
	assert.Equal(t, 0, g.Pending())
}

func TestRunDropsResultCancelledDuringWork(t *testing.T) {
	g := NewGroup(context.Background())
	msg := g.Run(0, func() tea.Msg {
		g.Cancel()
		return finishedMsg{}
	})()

	assert.Nil(t, msg)
}
