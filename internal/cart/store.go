package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/apperr"
)

var ErrConcurrentUpdate = fmt.Errorf("%w: cart was changed by another request, try again", apperr.ErrConflict)

// Store keeps one cart per user.
type Store interface {
	Load(ctx context.Context, userID string) (Cart, error)
	// Update applies fn to the current cart and stores the result. When fn
	// returns an error nothing is stored.
	Update(ctx context.Context, userID string, fn func(Cart) (Cart, error)) (Cart, error)
	Delete(ctx context.Context, userID string) error
}

type MemoryStore struct {
	mu    sync.Mutex
	carts map[string]Cart
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string]Cart)}
}

func (s *MemoryStore) Load(_ context.Context, userID string) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.carts[userID], nil
}

func (s *MemoryStore) Update(_ context.Context, userID string, fn func(Cart) (Cart, error)) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.carts[userID])
	if err != nil {
		return Cart{}, err
	}
	if next.IsEmpty() {
		delete(s.carts, userID)
	} else {
		s.carts[userID] = next
	}
	return next, nil
}

func (s *MemoryStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
	return nil
}

const maxUpdateAttempts = 3

// RedisStore keeps carts as JSON under cart:<userID>. Every write refreshes
// the TTL, so abandoned carts expire.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func redisKey(userID string) string {
	return "cart:" + userID
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func loadFrom(ctx context.Context, g getter, key string) (Cart, error) {
	data, err := g.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Cart{}, nil
	}
	if err != nil {
		return Cart{}, fmt.Errorf("get cart: %w", err)
	}
	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return Cart{}, fmt.Errorf("decode cart: %w", err)
	}
	return c, nil
}

func (s *RedisStore) Load(ctx context.Context, userID string) (Cart, error) {
	return loadFrom(ctx, s.client, redisKey(userID))
}

// Update runs fn inside WATCH/MULTI and retries when another writer touched
// the same cart in between.
func (s *RedisStore) Update(ctx context.Context, userID string, fn func(Cart) (Cart, error)) (Cart, error) {
	key := redisKey(userID)

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		var next Cart
		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			current, err := loadFrom(ctx, tx, key)
			if err != nil {
				return err
			}
			next, err = fn(current)
			if err != nil {
				return err
			}
			data, err := json.Marshal(next)
			if err != nil {
				return fmt.Errorf("encode cart: %w", err)
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				if next.IsEmpty() {
					pipe.Del(ctx, key)
				} else {
					pipe.Set(ctx, key, data, s.ttl)
				}
				return nil
			})
			return err
		}, key)

		if err == nil {
			return next, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return Cart{}, err
		}
	}
	return Cart{}, ErrConcurrentUpdate
}

func (s *RedisStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, redisKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
