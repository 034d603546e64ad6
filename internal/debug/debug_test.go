package debug

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogfDisabledByDefault(t *testing.T) {
	SetOutput(nil)
	assert.False(t, Enabled())
	Logf("dropped %d", 1) // must not panic
}

func TestLogfWritesWhenEnabled(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	Logf("advance to %s", "review-annotate")
	Log("transition", "from", 0, "to", 1)

	out := buf.String()
	assert.Contains(t, out, "advance to review-annotate")
	assert.Contains(t, out, "msg=transition from=0 to=1")
	assert.Contains(t, out, "level=DEBUG")
}

func TestEnableWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pathway.log")
	require.NoError(t, Enable(path))

	Logf("hello")
	require.NoError(t, Close())
	assert.False(t, Enabled())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestEnableTwiceClosesPreviousFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Enable(filepath.Join(dir, "first.log")))
	first, ok := closer.(*os.File)
	require.True(t, ok)

	require.NoError(t, Enable(filepath.Join(dir, "second.log")))
	defer func() { _ = Close() }()

	_, err := first.Write([]byte("late\n"))
	assert.ErrorIs(t, err, os.ErrClosed)

	Logf("after switch")
	data, err := os.ReadFile(filepath.Join(dir, "second.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "after switch")
}
