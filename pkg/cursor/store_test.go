package cursor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// setupTestRedis starts an in-memory Redis server for unit tests.
func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	t.Cleanup(func() {
		client.Close()
	})

	return mr, client
}

func TestNewStore(t *testing.T) {
	_, client := setupTestRedis(t)

	store := NewStore(client, 0)
	if store.redis != client {
		t.Error("Store redis client not set correctly")
	}
	if store.TTL() != DefaultTTL {
		t.Errorf("TTL() = %v, want %v", store.TTL(), DefaultTTL)
	}

	if NewStore(client, time.Minute).TTL() != time.Minute {
		t.Error("custom TTL not applied")
	}
}

func TestNewStore_Panic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("NewStore should panic with nil redis client")
		}
	}()
	NewStore(nil, 0)
}

func TestStore_SetAndGet(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewStore(client, 5*time.Minute)
	ctx := context.Background()

	key := Key{Endpoint: "games", Chain: "test"}
	entry := &Entry{
		NextPage: "/games/scroll/DXF1ZXJ5/?page=1",
		Count:    500,
		Pages:    1,
	}

	if err := store.Set(ctx, key, entry); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if entry.UpdatedAt.IsZero() {
		t.Error("Set() should stamp UpdatedAt")
	}

	if ttl := mr.TTL(key.String()); ttl != 5*time.Minute {
		t.Errorf("TTL = %v, want 5m", ttl)
	}

	got, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got.NextPage != entry.NextPage || got.Count != 500 || got.Pages != 1 {
		t.Errorf("Get() = %+v, want %+v", got, entry)
	}
}

func TestStore_GetMiss(t *testing.T) {
	_, client := setupTestRedis(t)
	store := NewStore(client, 0)

	_, err := store.Get(context.Background(), Key{Endpoint: "games", Chain: "none"})
	if !errors.Is(err, ErrCursorMiss) {
		t.Errorf("Get() error = %v, want ErrCursorMiss", err)
	}
}

func TestStore_Expiry(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewStore(client, time.Minute)
	ctx := context.Background()
	key := Key{Endpoint: "games", Chain: "expiring"}

	if err := store.Set(ctx, key, &Entry{NextPage: "/games/scroll/x/"}); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := store.Get(ctx, key); !errors.Is(err, ErrCursorMiss) {
		t.Errorf("Get() after expiry error = %v, want ErrCursorMiss", err)
	}
}

func TestStore_InvalidEntry(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewStore(client, 0)
	ctx := context.Background()
	key := Key{Endpoint: "games", Chain: "corrupt"}

	if err := mr.Set(key.String(), "not json"); err != nil {
		t.Fatalf("miniredis Set() failed: %v", err)
	}
	if _, err := store.Get(ctx, key); !errors.Is(err, ErrInvalidEntry) {
		t.Errorf("Get() error = %v, want ErrInvalidEntry", err)
	}

	if err := mr.Set(key.String(), `{"count":3}`); err != nil {
		t.Fatalf("miniredis Set() failed: %v", err)
	}
	if _, err := store.Get(ctx, key); !errors.Is(err, ErrInvalidEntry) {
		t.Errorf("Get() without next page error = %v, want ErrInvalidEntry", err)
	}
}

func TestStore_SetRejectsInvalid(t *testing.T) {
	_, client := setupTestRedis(t)
	store := NewStore(client, 0)
	ctx := context.Background()
	key := Key{Endpoint: "games"}

	if err := store.Set(ctx, key, nil); err == nil {
		t.Error("Set(nil) should fail")
	}
	if err := store.Set(ctx, key, &Entry{}); !errors.Is(err, ErrInvalidEntry) {
		t.Errorf("Set(empty) error = %v, want ErrInvalidEntry", err)
	}
}

func TestStore_Delete(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewStore(client, 0)
	ctx := context.Background()
	key := Key{Endpoint: "games", Chain: "delete"}

	if err := store.Set(ctx, key, &Entry{NextPage: "/games/scroll/x/"}); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if mr.Exists(key.String()) {
		t.Error("key should be deleted")
	}

	// deleting again is fine
	if err := store.Delete(ctx, key); err != nil {
		t.Errorf("Delete() of missing key failed: %v", err)
	}
}

func TestStore_RedisDown(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewStore(client, 0)
	mr.Close()

	ctx := context.Background()
	key := Key{Endpoint: "games"}

	if _, err := store.Get(ctx, key); err == nil || errors.Is(err, ErrCursorMiss) {
		t.Errorf("Get() error = %v, want redis error", err)
	}
	if err := store.Set(ctx, key, &Entry{NextPage: "/x/"}); err == nil {
		t.Error("Set() should fail when redis is down")
	}
	if err := store.Delete(ctx, key); err == nil {
		t.Error("Delete() should fail when redis is down")
	}
}
