package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store. A session expires after ttl without
// being read or written.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entry
	ttl      time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

type entry struct {
	session  *Session
	lastSeen time.Time
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a MemoryStore. A non-positive ttl disables expiry.
func NewMemoryStore(ttl time.Duration, logger *slog.Logger) *MemoryStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryStore{
		sessions: make(map[uuid.UUID]*entry),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger.With("component", "session_store"),
	}
}

// Create implements Store.
func (m *MemoryStore) Create(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = &entry{session: s.Clone(), lastSeen: m.now()}
	m.logger.Debug("session created", "session_id", s.ID, "session_count", len(m.sessions))
	return nil
}

// Get implements Store. A successful Get counts as activity.
func (m *MemoryStore) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.live(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	e.lastSeen = m.now()
	return e.session.Clone(), nil
}

// Replace implements Store.
func (m *MemoryStore) Replace(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.live(s.ID)
	if !ok {
		return ErrSessionNotFound
	}
	e.session = s.Clone()
	e.lastSeen = m.now()
	return nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Sweep removes expired sessions and returns how many were removed.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, e := range m.sessions {
		if m.expired(e) {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Debug("expired sessions removed", "removed", removed, "session_count", len(m.sessions))
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (m *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// live returns the unexpired entry for id. m.mu must be held.
func (m *MemoryStore) live(id uuid.UUID) (*entry, bool) {
	e, ok := m.sessions[id]
	if !ok || m.expired(e) {
		return nil, false
	}
	return e, true
}

func (m *MemoryStore) expired(e *entry) bool {
	return m.ttl > 0 && m.now().Sub(e.lastSeen) > m.ttl
}
