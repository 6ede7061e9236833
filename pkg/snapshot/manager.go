package snapshot

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/aretw0/enform/internal/logging"
	"github.com/aretw0/enform/pkg/domain"
	"github.com/aretw0/enform/pkg/observability"
	"github.com/aretw0/enform/pkg/ports"
)

// lockEntry holds the mutex and the reference count for one step key.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates snapshot access. It serializes operations per step
// key (reference-counted locks, garbage collected at zero) and owns the
// in-memory last-known snapshot each merge is based on.
//
// The merge base is deliberately the in-memory copy, not a fresh read from
// the backing store: a concurrent writer (another tab against the same
// origin) can be silently clobbered. Last-write-wins is the contract.
type Manager struct {
	store ports.SnapshotStore

	mu    sync.Mutex
	locks map[string]*lockEntry
	cache map[string]domain.Snapshot

	logger  *slog.Logger
	metrics *observability.Metrics
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for storage diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithMetrics configures Prometheus counters.
func WithMetrics(metrics *observability.Metrics) Option {
	return func(m *Manager) {
		m.metrics = metrics
	}
}

// NewManager creates a Manager over the given store.
func NewManager(store ports.SnapshotStore, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		locks: make(map[string]*lockEntry),
		cache: make(map[string]domain.Snapshot),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = logging.NewNop()
	}
	if m.metrics == nil {
		m.metrics = observability.Nop()
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock entry.mu and call release(key) after unlocking.
func (m *Manager) acquire(key string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[key]
	if !exists {
		entry = &lockEntry{}
		m.locks[key] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry at zero.
func (m *Manager) release(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[key]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, key)
	}
}

func (m *Manager) withLock(key string, fn func()) {
	entry := m.acquire(key)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(key)
	}()
	fn()
}

// Load returns the snapshot for the step key. A key that has never been
// written, or a storage/parse failure, yields an empty snapshot; failures
// are logged but never block the step.
func (m *Manager) Load(ctx context.Context, key string) domain.Snapshot {
	var snap domain.Snapshot
	m.withLock(key, func() {
		snap = m.loadLocked(ctx, key)
	})
	return snap.Clone()
}

func (m *Manager) loadLocked(ctx context.Context, key string) domain.Snapshot {
	if cached, ok := m.cache[key]; ok {
		return cached
	}

	snap, err := m.store.Load(ctx, key)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrSnapshotNotFound):
		snap = domain.NewSnapshot()
	default:
		m.logger.Warn("snapshot read failed, falling back to empty",
			"key", key,
			"err", err,
		)
		m.metrics.SnapshotFallbacks.Inc()
		snap = domain.NewSnapshot()
	}

	m.cache[key] = snap
	return snap
}

// Persist shallow-merges the partial update over the last-known snapshot
// and writes the result back under the same key. Keys absent from partial
// survive untouched. A failed write is logged and not retried; the merged
// snapshot still becomes the new in-memory base.
func (m *Manager) Persist(ctx context.Context, key string, partial domain.Snapshot) {
	m.withLock(key, func() {
		current := m.loadLocked(ctx, key)
		merged := current.Merge(partial)
		m.cache[key] = merged

		m.metrics.SnapshotWrites.Inc()
		if err := m.store.Save(ctx, key, merged); err != nil {
			m.logger.Warn("snapshot write failed",
				"key", key,
				"err", err,
			)
		}
	})
}

// Forget drops the in-memory copy for the key, forcing the next Load to
// re-read the backing store. Used by tests and by hosts that know another
// writer has intervened.
func (m *Manager) Forget(key string) {
	m.withLock(key, func() {
		delete(m.cache, key)
	})
}

// Store returns the underlying snapshot store.
func (m *Manager) Store() ports.SnapshotStore {
	return m.store
}
