package limiter

import (
	"context"
	"fmt"
	"time"

	"github.com/Nimixx/Call-Scheduler-sub000/internal/infra/ratelimit"
)

const (
	outcomeAllowed  = "allowed"
	outcomeLimited  = "limited"
	outcomeFailOpen = "failopen"
)

// Config параметры лимитера
type Config struct {
	// ReadPerWindow порог запросов в окне для read-класса
	ReadPerWindow int64
	// WritePerWindow порог запросов в окне для write-класса
	WritePerWindow int64
	// Window длина фиксированного окна
	Window time.Duration
	// LockRetries число попыток захвата блокировки ключа
	LockRetries int
	// LockRetryDelay пауза между попытками
	LockRetryDelay time.Duration
	// LockTTL TTL блокировки на случай падения держателя
	LockTTL time.Duration
}

// Service реализует ограничение частоты запросов по фиксированным окнам.
//
// Счетчик каждого ключа (класс + идентичность клиента) изменяется только под
// advisory-блокировкой, чтобы конкурентные запросы не теряли инкременты.
// Если блокировку не удалось захватить за отведенные попытки, запрос
// ПРОПУСКАЕТСЯ (fail-open): деградация лимитера не должна ронять доступность
// бронирований.
type Service struct {
	store   Store
	logger  Logger
	metrics Metrics
	tp      TimeProvider
	cfg     Config
}

// New создает сервис лимитера
func New(store Store, logger Logger, metrics Metrics, tp TimeProvider, cfg Config) *Service {
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.LockRetries <= 0 {
		cfg.LockRetries = 3
	}
	if cfg.LockRetryDelay <= 0 {
		cfg.LockRetryDelay = 50 * time.Millisecond
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = time.Second
	}
	return &Service{
		store:   store,
		logger:  logger,
		metrics: metrics,
		tp:      tp,
		cfg:     cfg,
	}
}

func (s *Service) limitFor(class Class) int64 {
	if class == ClassWrite {
		return s.cfg.WritePerWindow
	}
	return s.cfg.ReadPerWindow
}

// Check проверяет и учитывает один запрос клиента identity к классу class.
//
// Отклоненный запрос счетчик не увеличивает: пока окно не истекло, клиент
// сверх порога получает отказ независимо от того, сколько раз он повторил.
func (s *Service) Check(ctx context.Context, class Class, identity string) Decision {
	limit := s.limitFor(class)
	key := fmt.Sprintf("%s:%s", class, identity)

	locked, err := s.acquireWithRetries(ctx, key)
	if err != nil || !locked {
		// Fail-open: лимитер недоступен или ключ под постоянной контентцией -
		// пропускаем запрос без учета
		if err != nil {
			s.logger.Warn("Limiter: store unavailable, failing open: key=%s: %v", key, err)
		} else {
			s.logger.Warn("Limiter: lock retries exhausted, failing open: key=%s", key)
		}
		s.metrics.IncRateLimitDecision(string(class), outcomeFailOpen)
		now := s.tp.Now()
		return Decision{
			Allowed:   true,
			Limit:     limit,
			Remaining: limit,
			Reset:     now.Add(s.cfg.Window),
		}
	}
	defer func() {
		if err := s.store.ReleaseLock(ctx, key); err != nil {
			s.logger.Warn("Limiter: release lock failed: key=%s: %v", key, err)
		}
	}()

	now := s.tp.Now()

	counter, err := s.store.GetCounter(ctx, key)
	if err != nil {
		s.logger.Warn("Limiter: read counter failed, failing open: key=%s: %v", key, err)
		s.metrics.IncRateLimitDecision(string(class), outcomeFailOpen)
		return Decision{
			Allowed:   true,
			Limit:     limit,
			Remaining: limit,
			Reset:     now.Add(s.cfg.Window),
		}
	}

	// Нет счетчика или окно истекло - начинаем новое окно
	if counter == nil || !now.Before(counter.WindowStart.Add(s.cfg.Window)) {
		counter = &ratelimit.Counter{Count: 0, WindowStart: now}
	}

	reset := counter.WindowStart.Add(s.cfg.Window)

	if counter.Count >= limit {
		s.metrics.IncRateLimitDecision(string(class), outcomeLimited)
		s.logger.Debug("Limiter: request rejected: key=%s count=%d limit=%d", key, counter.Count, limit)
		return Decision{
			Allowed:    false,
			Limit:      limit,
			Remaining:  0,
			Reset:      reset,
			RetryAfter: reset.Sub(now),
		}
	}

	counter.Count++
	if err := s.store.PutCounter(ctx, key, *counter, s.cfg.Window+time.Second); err != nil {
		s.logger.Warn("Limiter: save counter failed, failing open: key=%s: %v", key, err)
		s.metrics.IncRateLimitDecision(string(class), outcomeFailOpen)
		return Decision{
			Allowed:   true,
			Limit:     limit,
			Remaining: limit - counter.Count,
			Reset:     reset,
		}
	}

	s.metrics.IncRateLimitDecision(string(class), outcomeAllowed)
	return Decision{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - counter.Count,
		Reset:     reset,
	}
}

func (s *Service) acquireWithRetries(ctx context.Context, key string) (bool, error) {
	var lastErr error
	for attempt := 0; attempt < s.cfg.LockRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return false, ctx.Err()
			case <-time.After(s.cfg.LockRetryDelay):
			}
		}
		ok, err := s.store.AcquireLock(ctx, key, s.cfg.LockTTL)
		if err != nil {
			lastErr = err
			continue
		}
		if ok {
			return true, nil
		}
	}
	return false, lastErr
}
