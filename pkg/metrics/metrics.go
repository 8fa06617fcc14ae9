package metrics

import (
	"database/sql"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-коллекторов сервиса
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbPoolOpen      prometheus.Gauge
	dbPoolIdle      prometheus.Gauge
	dbPoolInUse     prometheus.Gauge

	rateLimitDecisions *prometheus.CounterVec
	configFallbacks    *prometheus.CounterVec
	eventsPublished    *prometheus.CounterVec
}

// New создает и регистрирует коллекторы в default registry
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"operation"}),

		dbPoolOpen: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_open_connections",
			Help:        "Open connections in the database pool",
			ConstLabels: constLabels,
		}),
		dbPoolIdle: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_idle_connections",
			Help:        "Idle connections in the database pool",
			ConstLabels: constLabels,
		}),
		dbPoolInUse: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_in_use_connections",
			Help:        "Connections currently in use",
			ConstLabels: constLabels,
		}),

		rateLimitDecisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "ratelimit_decisions_total",
			Help:        "Rate limiter decisions by endpoint class and outcome",
			ConstLabels: constLabels,
		}, []string{"class", "outcome"}),

		configFallbacks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "scheduling_config_fallbacks_total",
			Help:        "Scheduling parameters replaced by safe defaults",
			ConstLabels: constLabels,
		}, []string{"parameter"}),

		eventsPublished: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "domain_events_published_total",
			Help:        "Domain events published to the in-process bus",
			ConstLabels: constLabels,
		}, []string{"event"}),
	}
}

// ObserveHTTPRequest фиксирует завершенный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration) {
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет gauges состояния пула соединений
func (m *Metrics) SetDBPoolStats(stats sql.DBStats) {
	m.dbPoolOpen.Set(float64(stats.OpenConnections))
	m.dbPoolIdle.Set(float64(stats.Idle))
	m.dbPoolInUse.Set(float64(stats.InUse))
}

// IncRateLimitDecision фиксирует решение rate limiter'а
// outcome: "allowed", "limited" или "failopen"
func (m *Metrics) IncRateLimitDecision(class, outcome string) {
	m.rateLimitDecisions.WithLabelValues(class, outcome).Inc()
}

// IncConfigFallback фиксирует подстановку безопасного дефолта вместо некорректного параметра
func (m *Metrics) IncConfigFallback(parameter string) {
	m.configFallbacks.WithLabelValues(parameter).Inc()
}

// IncEventPublished фиксирует публикацию доменного события
func (m *Metrics) IncEventPublished(event string) {
	m.eventsPublished.WithLabelValues(event).Inc()
}
