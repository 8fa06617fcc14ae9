package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Nimixx/Call-Scheduler-sub000/internal/domain"
	"github.com/Nimixx/Call-Scheduler-sub000/pkg/types"
)

// BlockedTimesCache кеш занятых времен (consultant, date) для read-пути
// Availability Query. Инвалидируется после создания или отмены бронирования;
// короткий TTL страхует от пропущенной инвалидации.
type BlockedTimesCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewBlockedTimesCache создает кеш поверх Redis клиента
func NewBlockedTimesCache(rdb *redis.Client, ttl time.Duration) *BlockedTimesCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &BlockedTimesCache{
		rdb:    rdb,
		prefix: "bookings:blocked",
		ttl:    ttl,
	}
}

func (c *BlockedTimesCache) key(consultantID int64, date time.Time) string {
	return fmt.Sprintf("%s:%d:%s", c.prefix, consultantID, date.Format(domain.DateFormat))
}

// Get возвращает занятые времена и признак попадания в кеш
func (c *BlockedTimesCache) Get(ctx context.Context, consultantID int64, date time.Time) ([]types.TimeString, bool, error) {
	raw, err := c.rdb.Get(ctx, c.key(consultantID, date)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: Get: %v", ErrCache, err)
	}

	var times []types.TimeString
	if err := json.Unmarshal([]byte(raw), &times); err != nil {
		return nil, false, fmt.Errorf("%w: Get - unmarshal: %v", ErrCache, err)
	}

	return times, true, nil
}

// Set сохраняет занятые времена с TTL
func (c *BlockedTimesCache) Set(ctx context.Context, consultantID int64, date time.Time, times []types.TimeString) error {
	raw, err := json.Marshal(times)
	if err != nil {
		return fmt.Errorf("%w: Set - marshal: %v", ErrCache, err)
	}

	if err := c.rdb.Set(ctx, c.key(consultantID, date), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set: %v", ErrCache, err)
	}
	return nil
}

// Invalidate удаляет запись кеша для (consultant, date)
func (c *BlockedTimesCache) Invalidate(ctx context.Context, consultantID int64, date time.Time) error {
	if err := c.rdb.Del(ctx, c.key(consultantID, date)).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate: %v", ErrCache, err)
	}
	return nil
}
