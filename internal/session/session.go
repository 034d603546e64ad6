// Package session persists the workflow position so an analysis can be
// resumed after quitting.
package session

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mrsinham/pathway/internal/workflow"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Version is the snapshot format version.
const Version = 1

// ErrUnsupportedVersion is returned for snapshots written by a newer format
// or carrying no valid version.
var ErrUnsupportedVersion = errors.New("unsupported session version")

// Snapshot is the on-disk form of a workflow.State.
type Snapshot struct {
	Version   int       `yaml:"version"`
	SavedAt   time.Time `yaml:"saved_at"`
	Current   int       `yaml:"current"`
	Completed []int     `yaml:"completed"`
}

// FromState converts st into a snapshot stamped at now.
func FromState(st workflow.State, now time.Time) Snapshot {
	return Snapshot{
		Version:   Version,
		SavedAt:   now.UTC(),
		Current:   st.Current,
		Completed: st.CompletedIndices(),
	}
}

// State converts the snapshot back. The result is not validated; callers
// pass it to Sequencer.Restore.
func (s Snapshot) State() workflow.State {
	st := workflow.NewState()
	st.Current = s.Current
	for _, i := range s.Completed {
		st.Completed[i] = struct{}{}
	}
	return st
}

// Save writes st to path.
func Save(fs afero.Fs, path string, st workflow.State, now time.Time) error {
	data, err := yaml.Marshal(FromState(st, now))
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create session directory: %w", err)
		}
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Load reads the snapshot at path.
func Load(fs afero.Fs, path string) (Snapshot, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read session: %w", err)
	}
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse session %s: %w", path, err)
	}
	if snap.Version < 1 || snap.Version > Version {
		return Snapshot{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, snap.Version)
	}
	return snap, nil
}
