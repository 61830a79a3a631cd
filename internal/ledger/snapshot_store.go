package ledger

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/osse101/MawRitual_Go/internal/repository"
	"github.com/osse101/MawRitual_Go/internal/utils"
)

// SnapshotStore keeps the latest engine state snapshot in memory and, when a
// path is set, mirrors it to a JSON file.
type SnapshotStore struct {
	mu       sync.Mutex
	path     string
	snapshot *repository.StateSnapshot
}

// NewSnapshotStore creates a store; an empty path disables the file mirror.
func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: path}
}

func (s *SnapshotStore) LoadState(_ context.Context) (*repository.StateSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot != nil || s.path == "" {
		return s.snapshot, nil
	}

	var snap repository.StateSnapshot
	if err := utils.LoadJSON(s.path, &snap); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	s.snapshot = &snap
	return s.snapshot, nil
}

func (s *SnapshotStore) SaveState(_ context.Context, snapshot *repository.StateSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot != nil && snapshot.Revision < s.snapshot.Revision {
		return nil
	}
	s.snapshot = snapshot
	if s.path == "" {
		return nil
	}
	return utils.SaveJSON(s.path, snapshot)
}
