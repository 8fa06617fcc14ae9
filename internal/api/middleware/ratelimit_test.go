package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nimixx/Call-Scheduler-sub000/internal/service/limiter"
)

type fakeLimiter struct {
	decision   limiter.Decision
	lastClass  limiter.Class
	lastIdent  string
	checkCount int
}

func (f *fakeLimiter) Check(_ context.Context, class limiter.Class, identity string) limiter.Decision {
	f.checkCount++
	f.lastClass = class
	f.lastIdent = identity
	return f.decision
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func allowedDecision() limiter.Decision {
	return limiter.Decision{
		Allowed:   true,
		Limit:     60,
		Remaining: 59,
		Reset:     time.Unix(1750000000, 0),
	}
}

func TestWrap_AllowedRequestPassesWithHeaders(t *testing.T) {
	fl := &fakeLimiter{decision: allowedDecision()}
	mw := NewRateLimit(fl, nopLogger{}, true, false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/consultants/1/available-slots", nil)
	req.RemoteAddr = "10.0.0.1:51234"
	rec := httptest.NewRecorder()

	mw.Wrap(limiter.ClassRead, okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "59", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "1750000000", rec.Header().Get("X-RateLimit-Reset"))
	assert.Equal(t, limiter.ClassRead, fl.lastClass)
	assert.Equal(t, "ip:10.0.0.1", fl.lastIdent)
}

func TestWrap_RejectedRequestGets429(t *testing.T) {
	fl := &fakeLimiter{decision: limiter.Decision{
		Allowed:    false,
		Limit:      10,
		Remaining:  0,
		Reset:      time.Unix(1750000000, 0),
		RetryAfter: 42 * time.Second,
	}}
	mw := NewRateLimit(fl, nopLogger{}, true, false)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
	req.RemoteAddr = "10.0.0.1:51234"
	rec := httptest.NewRecorder()

	mw.Wrap(limiter.ClassWrite, okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "42", rec.Header().Get("Retry-After"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Contains(t, rec.Body.String(), "rate_limited")
	assert.Contains(t, rec.Body.String(), `"retryAfter":42`)
}

func TestWrap_UserHeaderBeatsIP(t *testing.T) {
	fl := &fakeLimiter{decision: allowedDecision()}
	mw := NewRateLimit(fl, nopLogger{}, true, false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:51234"
	req.Header.Set("X-User-ID", "alice")
	rec := httptest.NewRecorder()

	mw.Wrap(limiter.ClassRead, okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, "user:alice", fl.lastIdent)
}

func TestWrap_ForwardedForRequiresTrust(t *testing.T) {
	fl := &fakeLimiter{decision: allowedDecision()}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:51234"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	// Без доверия к прокси заголовок игнорируется
	rec := httptest.NewRecorder()
	NewRateLimit(fl, nopLogger{}, true, false).Wrap(limiter.ClassRead, okHandler()).ServeHTTP(rec, req)
	assert.Equal(t, "ip:10.0.0.1", fl.lastIdent)

	// С доверием берется первый адрес из списка
	rec = httptest.NewRecorder()
	NewRateLimit(fl, nopLogger{}, true, true).Wrap(limiter.ClassRead, okHandler()).ServeHTTP(rec, req)
	assert.Equal(t, "ip:203.0.113.7", fl.lastIdent)
}

func TestWrap_DisabledSkipsLimiter(t *testing.T) {
	fl := &fakeLimiter{}
	mw := NewRateLimit(fl, nopLogger{}, false, false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	mw.Wrap(limiter.ClassRead, okHandler()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, fl.checkCount)
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}
