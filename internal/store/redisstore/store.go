package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/IBRAHIM-rgf/Ai-frontdesk-dem/internal/frontdesk"
)

// Store keeps best-effort ledger snapshots keyed by session id, with a TTL
// matching the session timeout. It is never authoritative: losing a snapshot
// just means the demo session starts empty again.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(addr, password string, db int, ttl time.Duration) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Store{rdb: rdb, ttl: ttl}, nil
}

func key(sessionID string) string {
	return "frontdesk:session:" + sessionID
}

// Load returns the snapshot for a session, or (nil, nil) when none exists.
func (s *Store) Load(ctx context.Context, sessionID string) (*frontdesk.Ledger, error) {
	raw, err := s.rdb.Get(ctx, key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var led frontdesk.Ledger
	if err := json.Unmarshal(raw, &led); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &led, nil
}

func (s *Store) Save(ctx context.Context, sessionID string, led *frontdesk.Ledger) error {
	raw, err := json.Marshal(led)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key(sessionID), raw, s.ttl).Err()
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, key(sessionID)).Err()
}

func (s *Store) Close() error {
	return s.rdb.Close()
}
