package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/IBRAHIM-rgf/Ai-frontdesk-dem/internal/frontdesk"
)

type memSnapshots struct {
	data map[string]*frontdesk.Ledger
	err  error
}

func newMemSnapshots() *memSnapshots {
	return &memSnapshots{data: make(map[string]*frontdesk.Ledger)}
}

func (m *memSnapshots) Load(ctx context.Context, id string) (*frontdesk.Ledger, error) {
	_ = ctx
	if m.err != nil {
		return nil, m.err
	}
	return m.data[id], nil
}

func (m *memSnapshots) Save(ctx context.Context, id string, led *frontdesk.Ledger) error {
	_ = ctx
	if m.err != nil {
		return m.err
	}
	m.data[id] = led
	return nil
}

func (m *memSnapshots) Delete(ctx context.Context, id string) error {
	_ = ctx
	delete(m.data, id)
	return nil
}

func TestGetOrCreate_EmptyIDAllocatesSession(t *testing.T) {
	m := NewManager(time.Minute, nil)

	s, err := m.GetOrCreate(context.Background(), "")
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if s.ID == "" {
		t.Fatal("expected a generated session id")
	}
	if s.Ledger == nil {
		t.Fatal("ledger is nil")
	}
	if m.Len() != 1 {
		t.Fatalf("len=%d", m.Len())
	}
}

func TestGetOrCreate_SameIDSameSession(t *testing.T) {
	m := NewManager(time.Minute, nil)
	ctx := context.Background()

	a, err := m.GetOrCreate(ctx, "sess-1")
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	b, err := m.GetOrCreate(ctx, "sess-1")
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if a != b {
		t.Fatal("expected the same session instance")
	}
	if m.Len() != 1 {
		t.Fatalf("len=%d", m.Len())
	}
}

func TestGetOrCreate_SeedsFromSnapshot(t *testing.T) {
	snaps := newMemSnapshots()
	snaps.data["sess-1"] = &frontdesk.Ledger{
		Appointments: []frontdesk.Appointment{{ID: "Rdeadbeef", Status: frontdesk.StatusConfirmed}},
	}
	m := NewManager(time.Minute, snaps)

	s, err := m.GetOrCreate(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if len(s.Ledger.Appointments) != 1 || s.Ledger.Appointments[0].ID != "Rdeadbeef" {
		t.Fatalf("ledger not seeded: %+v", s.Ledger)
	}
}

func TestGetOrCreate_SnapshotFailureStartsEmpty(t *testing.T) {
	snaps := newMemSnapshots()
	snaps.err = errors.New("redis down")
	m := NewManager(time.Minute, snaps)

	s, err := m.GetOrCreate(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if len(s.Ledger.Appointments) != 0 {
		t.Fatalf("expected empty ledger, got %+v", s.Ledger)
	}
}

func TestDelete_DropsSessionAndSnapshot(t *testing.T) {
	snaps := newMemSnapshots()
	m := NewManager(time.Minute, snaps)
	ctx := context.Background()

	s, err := m.GetOrCreate(ctx, "sess-1")
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	m.Snapshot(ctx, s)
	if _, ok := snaps.data["sess-1"]; !ok {
		t.Fatal("snapshot not saved")
	}

	m.Delete(ctx, "sess-1")
	if m.Len() != 0 {
		t.Fatalf("len=%d", m.Len())
	}
	if _, ok := snaps.data["sess-1"]; ok {
		t.Fatal("snapshot not deleted")
	}
}

func TestEvictIdle(t *testing.T) {
	m := NewManager(time.Minute, nil)
	ctx := context.Background()

	stale, err := m.GetOrCreate(ctx, "stale")
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if _, err := m.GetOrCreate(ctx, "fresh"); err != nil {
		t.Fatalf("get or create: %v", err)
	}

	stale.lastActive.Store(time.Now().Add(-2 * time.Minute).UnixNano())
	m.evictIdle(time.Now())

	if m.Len() != 1 {
		t.Fatalf("len=%d", m.Len())
	}
	if _, ok := m.sessions["fresh"]; !ok {
		t.Fatal("fresh session evicted")
	}
}
