package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/Nimixx/Call-Scheduler-sub000/internal/api/handlers"
	"github.com/Nimixx/Call-Scheduler-sub000/internal/service/limiter"
)

const (
	headerUserID       = "X-User-ID"
	headerForwardedFor = "X-Forwarded-For"
	headerLimit        = "X-RateLimit-Limit"
	headerRemaining    = "X-RateLimit-Remaining"
	headerReset        = "X-RateLimit-Reset"
	msgTooManyRequests = "слишком много запросов, повторите позже"
)

// RateLimit ограничивает частоту запросов по классам эндпоинтов.
//
// Идентичность клиента: заголовок X-User-ID, иначе IP. X-Forwarded-For
// учитывается только при trustProxy - иначе заголовку верить нельзя, клиент
// подделает его и обойдет лимит.
type RateLimit struct {
	limiter    Limiter
	logger     Logger
	enabled    bool
	trustProxy bool
}

// NewRateLimit создает middleware лимитера
func NewRateLimit(l Limiter, logger Logger, enabled, trustProxy bool) *RateLimit {
	return &RateLimit{
		limiter:    l,
		logger:     logger,
		enabled:    enabled,
		trustProxy: trustProxy,
	}
}

// Wrap оборачивает обработчик проверкой лимита указанного класса
func (m *RateLimit) Wrap(class limiter.Class, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.enabled {
			next.ServeHTTP(w, r)
			return
		}

		identity := m.identity(r)
		decision := m.limiter.Check(r.Context(), class, identity)

		w.Header().Set(headerLimit, strconv.FormatInt(decision.Limit, 10))
		w.Header().Set(headerRemaining, strconv.FormatInt(decision.Remaining, 10))
		w.Header().Set(headerReset, strconv.FormatInt(decision.Reset.Unix(), 10))

		if !decision.Allowed {
			m.logger.Info("RateLimit: rejected %s %s: class=%s, identity=%s",
				r.Method, r.URL.Path, class, identity)
			handlers.RespondRateLimited(w, decision.RetryAfter, msgTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// identity определяет идентичность клиента для ключа лимитера
func (m *RateLimit) identity(r *http.Request) string {
	if userID := strings.TrimSpace(r.Header.Get(headerUserID)); userID != "" {
		return "user:" + userID
	}
	return "ip:" + m.clientIP(r)
}

// clientIP извлекает IP клиента. За прокси берется первый адрес из
// X-Forwarded-For (исходный клиент).
func (m *RateLimit) clientIP(r *http.Request) string {
	if m.trustProxy {
		if forwarded := r.Header.Get(headerForwardedFor); forwarded != "" {
			parts := strings.Split(forwarded, ",")
			if ip := strings.TrimSpace(parts[0]); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
