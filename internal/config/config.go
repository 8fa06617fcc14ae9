package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из TOML файла
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Redis         RedisConfig         `toml:"redis"`
	Scheduling    SchedulingConfig    `toml:"scheduling"`
	RateLimit     RateLimitConfig     `toml:"ratelimit"`
	Notifications NotificationsConfig `toml:"notifications"`
	Migrations    MigrationsConfig    `toml:"migrations"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig настройки подключения к Redis (rate limiter и кеш)
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// SchedulingConfig параметры расписания слотов
type SchedulingConfig struct {
	SlotDurationMinutes int `toml:"slot_duration_minutes"`
	BufferMinutes       int `toml:"buffer_minutes"`
	MaxAdvanceDays      int `toml:"max_advance_days"`
}

// RateLimitConfig параметры rate limiter'а.
// Пороги независимы для read и write endpoint'ов.
type RateLimitConfig struct {
	Enabled           bool `toml:"enabled"`
	ReadPerWindow     int  `toml:"read_per_window"`
	WritePerWindow    int  `toml:"write_per_window"`
	WindowSeconds     int  `toml:"window_seconds"`
	LockRetries       int  `toml:"lock_retries"`
	LockRetryDelayMS  int  `toml:"lock_retry_delay_ms"`
	LockTTLSeconds    int  `toml:"lock_ttl_seconds"`
	TrustProxyHeaders bool `toml:"trust_proxy_headers"`
}

// NotificationsConfig настройки webhook-уведомлений о событиях
type NotificationsConfig struct {
	WebhookURL string `toml:"webhook_url"` // пустая строка = уведомления выключены
	Timeout    int    `toml:"timeout"`     // секунды
}

// MigrationsConfig настройки миграций схемы БД
type MigrationsConfig struct {
	Auto bool   `toml:"auto"`
	Dir  string `toml:"dir"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Load загружает конфигурацию из TOML файла и проставляет дефолты
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if cfg.Database.Host == "" || cfg.Database.DBName == "" {
		return nil, fmt.Errorf("config: database host and dbname are required")
	}

	return &cfg, nil
}

// applyDefaults проставляет безопасные значения для незаполненных полей.
// Валидация scheduling-параметров происходит в domain.SchedulingConfig.Normalize -
// там некорректные значения заменяются дефолтами с диагностикой, а не ошибкой.
func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}

	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}

	if c.RateLimit.ReadPerWindow == 0 {
		c.RateLimit.ReadPerWindow = 60
	}
	if c.RateLimit.WritePerWindow == 0 {
		c.RateLimit.WritePerWindow = 10
	}
	if c.RateLimit.WindowSeconds == 0 {
		c.RateLimit.WindowSeconds = 60
	}
	if c.RateLimit.LockRetries == 0 {
		c.RateLimit.LockRetries = 3
	}
	if c.RateLimit.LockRetryDelayMS == 0 {
		c.RateLimit.LockRetryDelayMS = 50
	}
	if c.RateLimit.LockTTLSeconds == 0 {
		c.RateLimit.LockTTLSeconds = 1
	}

	if c.Notifications.Timeout == 0 {
		c.Notifications.Timeout = 5
	}

	if c.Migrations.Dir == "" {
		c.Migrations.Dir = "migrations"
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "call-scheduler"
	}
}
