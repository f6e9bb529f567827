package cart

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store persists carts in Redis, one hash per user keyed as
// "cart:<userID>".  Hash fields are canonical movie keys and values
// are the quantity strings.  The TTL is refreshed on every write so a
// cart lives for the duration of an active session and expires on its
// own once the user goes away.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore returns a Store bound to the given Redis client.  The
// client must be non-nil; the cart is core state, not a cache, so
// there is no degraded no-Redis mode.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if rdb == nil {
		panic("nil redis client passed to cart.NewStore")
	}
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &Store{rdb: rdb, ttl: ttl}
}

func (s *Store) key(userID uint64) string {
	return "cart:" + strconv.FormatUint(userID, 10)
}

// Get loads the user's cart.  A user with no cart gets an empty one;
// first access never fails just because nothing was stored yet.
func (s *Store) Get(ctx context.Context, userID uint64) (Cart, error) {
	fields, err := s.rdb.HGetAll(ctx, s.key(userID)).Result()
	if err != nil {
		return nil, err
	}
	c := make(Cart, len(fields))
	for k, v := range fields {
		c[k] = v
	}
	return c, nil
}

// Set writes one movie quantity into the user's cart with overwrite
// semantics and refreshes the session TTL.
func (s *Store) Set(ctx context.Context, userID, movieID uint64, quantity string) error {
	key := s.key(userID)
	if err := s.rdb.HSet(ctx, key, Key(movieID), quantity).Err(); err != nil {
		return err
	}
	return s.rdb.Expire(ctx, key, s.ttl).Err()
}

// Clear resets the user's cart to empty.
func (s *Store) Clear(ctx context.Context, userID uint64) error {
	return s.rdb.Del(ctx, s.key(userID)).Err()
}
