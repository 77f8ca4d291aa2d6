// Package cursor stores IGDB scroll cursors in Redis.
//
// IGDB scroll pagination hands out a continuation path in the X-Next-Page
// header of every page. The store keeps the latest continuation of a named
// scroll chain so a walk over a large endpoint can be resumed by another
// process or after a restart. Only cursors are stored, never response bodies.
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	store := cursor.NewStore(redisClient, cursor.DefaultTTL)
//
//	key := cursor.Key{Endpoint: "games", Chain: "nightly-import"}
//
//	// Save the continuation of the page just read
//	entry, ok := cursor.FromHeaders(resp.Header)
//	if ok {
//		err := store.Set(ctx, key, entry)
//	}
//
//	// Resume later
//	entry, err := store.Get(ctx, key)
//	if err == cursor.ErrCursorMiss {
//		// start a new scroll
//	}
//
// # Expiry
//
// IGDB invalidates a scroll cursor after a few minutes without use, so every
// entry is written with a TTL (DefaultTTL unless configured) and disappears
// from Redis together with the upstream cursor.
//
// # Metrics
//
//   - igdb_cursor_hits_total - Cursor lookups that found an entry
//   - igdb_cursor_misses_total - Cursor lookups that found nothing
//   - igdb_cursor_errors_total{operation} - Redis errors by operation
package cursor
