package transcript

import (
	"context"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(gormsqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&Message{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestRecordAndList(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	ctx := context.Background()

	if err := repo.Record(ctx, "sess-1", "user", "Bonjour"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := repo.Record(ctx, "sess-1", "assistant", "Bonjour, comment puis-je aider ?"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := repo.Record(ctx, "sess-2", "user", "autre session"); err != nil {
		t.Fatalf("record: %v", err)
	}

	msgs, err := repo.ListBySession(ctx, "sess-1", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	// newest first
	if msgs[0].Role != "assistant" || msgs[1].Role != "user" {
		t.Fatalf("order wrong: %q then %q", msgs[0].Role, msgs[1].Role)
	}
	if msgs[1].Content != "Bonjour" {
		t.Fatalf("content=%q", msgs[1].Content)
	}
}

func TestListBySession_LimitClamped(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		if err := repo.Record(ctx, "sess-1", "user", "msg"); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	msgs, err := repo.ListBySession(ctx, "sess-1", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(msgs) != 50 {
		t.Fatalf("expected default limit 50, got %d", len(msgs))
	}

	msgs, err = repo.ListBySession(ctx, "sess-1", 5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(msgs) != 5 {
		t.Fatalf("expected 5, got %d", len(msgs))
	}
}
