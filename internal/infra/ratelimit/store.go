package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Counter состояние счетчика фиксированного окна для одного ключа
// (endpoint class + идентичность клиента)
type Counter struct {
	Count       int64
	WindowStart time.Time
}

// Store хранилище счетчиков rate limiter'а в Redis.
//
// Счетчик - hash с полями count и window_start, TTL равен длине окна
// (с запасом), чтобы неактивные ключи истекали сами. Блокировка - отдельный
// ключ c коротким TTL через SET NX: TTL гарантирует освобождение даже если
// держатель упал, не освободив её явно.
type Store struct {
	rdb    *redis.Client
	prefix string
}

// StoreOption опция конфигурации Store
type StoreOption func(*Store)

// WithPrefix переопределяет префикс ключей в Redis
func WithPrefix(prefix string) StoreOption {
	return func(s *Store) { s.prefix = prefix }
}

// NewStore создает хранилище счетчиков поверх Redis клиента
func NewStore(rdb *redis.Client, opts ...StoreOption) *Store {
	s := &Store{
		rdb:    rdb,
		prefix: "ratelimit",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) counterKey(key string) string {
	return s.prefix + ":" + key
}

func (s *Store) lockKey(key string) string {
	return s.prefix + ":lock:" + key
}

// AcquireLock пытается захватить блокировку ключа. Возвращает false, если
// блокировка уже занята другим запросом.
func (s *Store) AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, s.lockKey(key), 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%w: AcquireLock: %v", ErrStore, err)
	}
	return ok, nil
}

// ReleaseLock освобождает блокировку ключа
func (s *Store) ReleaseLock(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.lockKey(key)).Err(); err != nil {
		return fmt.Errorf("%w: ReleaseLock: %v", ErrStore, err)
	}
	return nil
}

// GetCounter читает счетчик ключа. Возвращает nil, если счетчика нет
// (первый запрос в окне или TTL истек).
func (s *Store) GetCounter(ctx context.Context, key string) (*Counter, error) {
	fields, err := s.rdb.HGetAll(ctx, s.counterKey(key)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCounter: %v", ErrStore, err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	count, err := strconv.ParseInt(fields["count"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: GetCounter - parse count: %v", ErrStore, err)
	}

	windowStart, err := strconv.ParseInt(fields["window_start"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: GetCounter - parse window_start: %v", ErrStore, err)
	}

	return &Counter{
		Count:       count,
		WindowStart: time.Unix(windowStart, 0),
	}, nil
}

// PutCounter записывает счетчик ключа с TTL
func (s *Store) PutCounter(ctx context.Context, key string, counter Counter, ttl time.Duration) error {
	k := s.counterKey(key)

	pipe := s.rdb.Pipeline()
	pipe.HSet(ctx, k,
		"count", counter.Count,
		"window_start", counter.WindowStart.Unix(),
	)
	pipe.Expire(ctx, k, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: PutCounter: %v", ErrStore, err)
	}
	return nil
}
