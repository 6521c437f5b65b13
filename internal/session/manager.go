package session

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/IBRAHIM-rgf/Ai-frontdesk-dem/internal/common"
	"github.com/IBRAHIM-rgf/Ai-frontdesk-dem/internal/frontdesk"
)

// Session owns one ledger for the lifetime of a conversation. Lock/Unlock
// serialize turns: the reducer assumes exclusive, non-reentrant access, so at
// most one turn may be in flight per session.
type Session struct {
	ID     string
	Ledger *frontdesk.Ledger

	mu         sync.Mutex
	lastActive atomic.Int64 // unix nanos
}

func (s *Session) Lock() {
	s.mu.Lock()
	s.lastActive.Store(time.Now().UnixNano())
}

func (s *Session) Unlock() {
	s.lastActive.Store(time.Now().UnixNano())
	s.mu.Unlock()
}

func (s *Session) idleFor(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastActive.Load()))
}

// Snapshots persists ledgers across restarts, best effort. The in-memory map
// stays authoritative; a snapshot store only seeds sessions it has seen.
type Snapshots interface {
	Load(ctx context.Context, sessionID string) (*frontdesk.Ledger, error)
	Save(ctx context.Context, sessionID string, led *frontdesk.Ledger) error
	Delete(ctx context.Context, sessionID string) error
}

// Manager hands out sessions keyed by id and evicts idle ones.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	timeout  time.Duration
	snaps    Snapshots // optional
}

func NewManager(timeout time.Duration, snaps Snapshots) *Manager {
	if timeout <= 0 {
		timeout = 30 * time.Minute
	}
	return &Manager{
		sessions: make(map[string]*Session),
		timeout:  timeout,
		snaps:    snaps,
	}
}

// GetOrCreate returns the session for id, creating it when unknown. An empty
// id allocates a fresh session. Unknown non-empty ids are seeded from the
// snapshot store when one is configured, mirroring how the original demo let a
// session survive a reload.
func (m *Manager) GetOrCreate(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		nid, err := common.NewULID()
		if err != nil {
			return nil, err
		}
		id = nid
	}

	m.mu.Lock()
	if s, ok := m.sessions[id]; ok {
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	led := frontdesk.NewLedger()
	if m.snaps != nil {
		snap, err := m.snaps.Load(ctx, id)
		switch {
		case err != nil:
			log.Printf("session snapshot load failed session=%s err=%v", id, err)
		case snap != nil:
			led = snap
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		// lost the race to another request for the same id
		return s, nil
	}
	s := &Session{ID: id, Ledger: led}
	s.lastActive.Store(time.Now().UnixNano())
	m.sessions[id] = s
	return s, nil
}

// Snapshot saves the session's ledger, best effort.
func (m *Manager) Snapshot(ctx context.Context, s *Session) {
	if m.snaps == nil {
		return
	}
	if err := m.snaps.Save(ctx, s.ID, s.Ledger); err != nil {
		log.Printf("session snapshot save failed session=%s err=%v", s.ID, err)
	}
}

// Delete drops a session and its snapshot (the demo reset button).
func (m *Manager) Delete(ctx context.Context, id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()

	if m.snaps != nil {
		if err := m.snaps.Delete(ctx, id); err != nil {
			log.Printf("session snapshot delete failed session=%s err=%v", id, err)
		}
	}
}

// Len reports how many sessions are live.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// StartCleanup evicts idle sessions until ctx is done. Run it in its own
// goroutine.
func (m *Manager) StartCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.evictIdle(time.Now())
		}
	}
}

func (m *Manager) evictIdle(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if s.idleFor(now) > m.timeout {
			delete(m.sessions, id)
			log.Printf("session expired session=%s idle=%s", id, s.idleFor(now).Truncate(time.Second))
		}
	}
}
