package cursor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL is how long a cursor is kept without being refreshed.
const DefaultTTL = 10 * time.Minute

var (
	// ErrCursorMiss indicates no cursor is stored for the key
	ErrCursorMiss = errors.New("cursor miss")

	// ErrInvalidEntry indicates the stored entry is invalid or corrupted
	ErrInvalidEntry = errors.New("invalid cursor entry")
)

// Store persists scroll cursors in Redis.
type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewStore creates a cursor store. A non-positive ttl selects DefaultTTL.
func NewStore(redisClient *redis.Client, ttl time.Duration) *Store {
	if redisClient == nil {
		panic("redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		redis: redisClient,
		ttl:   ttl,
	}
}

// TTL returns the expiry applied to written entries.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Get retrieves the cursor stored for key.
// Returns ErrCursorMiss if nothing is stored.
func (s *Store) Get(ctx context.Context, key Key) (*Entry, error) {
	data, err := s.redis.Get(ctx, key.String()).Bytes()
	if err != nil {
		if err == redis.Nil {
			CursorMisses.Inc()
			return nil, ErrCursorMiss
		}
		CursorErrors.WithLabelValues("get").Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		CursorErrors.WithLabelValues("get").Inc()
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	if entry.NextPage == "" {
		CursorErrors.WithLabelValues("get").Inc()
		return nil, fmt.Errorf("%w: empty next page", ErrInvalidEntry)
	}

	CursorHits.Inc()
	return &entry, nil
}

// Set stores entry under key, refreshing the TTL.
func (s *Store) Set(ctx context.Context, key Key, entry *Entry) error {
	if entry == nil {
		return fmt.Errorf("cursor entry cannot be nil")
	}
	if entry.NextPage == "" {
		return fmt.Errorf("%w: empty next page", ErrInvalidEntry)
	}

	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = time.Now()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		CursorErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("marshal cursor entry: %w", err)
	}

	if err := s.redis.Set(ctx, key.String(), data, s.ttl).Err(); err != nil {
		CursorErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("redis set: %w", err)
	}

	return nil
}

// Delete removes the cursor stored for key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key Key) error {
	if err := s.redis.Del(ctx, key.String()).Err(); err != nil {
		CursorErrors.WithLabelValues("delete").Inc()
		return fmt.Errorf("redis del: %w", err)
	}

	return nil
}
