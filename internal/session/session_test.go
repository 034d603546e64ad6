package session

import (
	"os"
	"testing"
	"time"

	"github.com/mrsinham/pathway/internal/workflow"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func TestSaveLoadRestore(t *testing.T) {
	fs := afero.NewMemMapFs()
	seq := workflow.NewDefaultSequencer()
	require.NoError(t, seq.Advance())
	require.NoError(t, seq.Advance())
	require.NoError(t, seq.GoBack())

	require.NoError(t, Save(fs, "state/session.yaml", seq.State(), now))

	snap, err := Load(fs, "state/session.yaml")
	require.NoError(t, err)
	assert.Equal(t, Version, snap.Version)
	assert.Equal(t, now, snap.SavedAt)
	assert.Equal(t, 1, snap.Current)
	assert.Equal(t, []int{0, 1}, snap.Completed)

	resumed := workflow.NewDefaultSequencer()
	require.NoError(t, resumed.Restore(snap.State()))
	assert.Equal(t, seq.State(), resumed.State())
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "nope.yaml")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadRejectsNewerVersion(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "s.yaml", []byte("version: 9\ncurrent: 0\n"), 0o644))

	_, err := Load(fs, "s.yaml")
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestLoadRejectsMissingVersion(t *testing.T) {
	for name, body := range map[string]string{
		"missing":  "current: 1\n",
		"zero":     "version: 0\ncurrent: 1\n",
		"negative": "version: -2\ncurrent: 1\n",
	} {
		t.Run(name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "s.yaml", []byte(body), 0o644))

			_, err := Load(fs, "s.yaml")
			assert.ErrorIs(t, err, ErrUnsupportedVersion)
		})
	}
}

func TestCorruptSnapshotFailsRestore(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "s.yaml", []byte("version: 1\ncurrent: 7\ncompleted: [0]\n"), 0o644))

	snap, err := Load(fs, "s.yaml")
	require.NoError(t, err)

	seq := workflow.NewDefaultSequencer()
	assert.Error(t, seq.Restore(snap.State()))
	assert.Equal(t, 0, seq.Current())
}
