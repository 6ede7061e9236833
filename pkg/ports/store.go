package ports

import (
	"context"

	"github.com/aretw0/enform/pkg/domain"
)

// SnapshotStore defines the interface for persisting step snapshots.
// Snapshots are origin-scoped key-value JSON blobs with no expiry; the
// engine never deletes them, but backends expose Delete for housekeeping.
type SnapshotStore interface {
	// Save persists the snapshot under the step key.
	Save(ctx context.Context, key string, snap domain.Snapshot) error

	// Load retrieves the snapshot for the step key.
	// Returns domain.ErrSnapshotNotFound if the key has never been written.
	Load(ctx context.Context, key string) (domain.Snapshot, error)

	// Delete removes the snapshot for the step key.
	Delete(ctx context.Context, key string) error

	// List returns every known step key.
	List(ctx context.Context) ([]string, error)
}
