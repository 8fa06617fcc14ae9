package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/Nimixx/Call-Scheduler-sub000/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/Nimixx/Call-Scheduler-sub000/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/Nimixx/Call-Scheduler-sub000/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/Nimixx/Call-Scheduler-sub000/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/Nimixx/Call-Scheduler-sub000/internal/api/handlers/get_booking"
	getConsultantBookingsHandler "github.com/Nimixx/Call-Scheduler-sub000/internal/api/handlers/get_consultant_bookings"
	getScheduleHandler "github.com/Nimixx/Call-Scheduler-sub000/internal/api/handlers/get_schedule"
	updateScheduleHandler "github.com/Nimixx/Call-Scheduler-sub000/internal/api/handlers/update_schedule"
	"github.com/Nimixx/Call-Scheduler-sub000/internal/api/middleware"
	"github.com/Nimixx/Call-Scheduler-sub000/internal/app"
	"github.com/Nimixx/Call-Scheduler-sub000/internal/config"
	"github.com/Nimixx/Call-Scheduler-sub000/internal/domain"
	"github.com/Nimixx/Call-Scheduler-sub000/internal/events"
	"github.com/Nimixx/Call-Scheduler-sub000/internal/infra/cache"
	"github.com/Nimixx/Call-Scheduler-sub000/internal/infra/ratelimit"
	availabilityRepo "github.com/Nimixx/Call-Scheduler-sub000/internal/infra/storage/availability"
	bookingRepo "github.com/Nimixx/Call-Scheduler-sub000/internal/infra/storage/booking"
	consultantRepo "github.com/Nimixx/Call-Scheduler-sub000/internal/infra/storage/consultant"
	"github.com/Nimixx/Call-Scheduler-sub000/internal/integrations/notifyservice"
	bookingsService "github.com/Nimixx/Call-Scheduler-sub000/internal/service/bookings"
	"github.com/Nimixx/Call-Scheduler-sub000/internal/service/limiter"
	scheduleService "github.com/Nimixx/Call-Scheduler-sub000/internal/service/schedule"
	createBookingUC "github.com/Nimixx/Call-Scheduler-sub000/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/Nimixx/Call-Scheduler-sub000/internal/usecase/get_available_slots"
	"github.com/Nimixx/Call-Scheduler-sub000/pkg/dbmetrics"
	"github.com/Nimixx/Call-Scheduler-sub000/pkg/logger"
	"github.com/Nimixx/Call-Scheduler-sub000/pkg/metrics"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting Call-Scheduler...")
	log.Info("Configuration loaded from config.toml")

	// Метрики регистрируются всегда (коллекторы дешевы), endpoint и HTTP
	// middleware включаются флагом
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Миграции схемы
	if cfg.Migrations.Auto {
		migrator, err := app.NewMigrator(db, cfg.Migrations.Dir)
		if err != nil {
			log.Fatal("Failed to init migrator: %v", err)
		}
		if err := migrator.Run(context.Background()); err != nil {
			log.Fatal("Failed to run migrations: %v", err)
		}
		version, _ := migrator.Version(context.Background())
		log.Info("Migrations applied, schema version=%d", version)
	}

	// Подключаемся к Redis (rate limiter и кеш занятых времен)
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		// Redis не критичен для старта: лимитер fail-open, кеш сквозной
		log.Warn("Redis unavailable at startup (addr=%s): %v", cfg.Redis.Addr, err)
	} else {
		log.Info("Successfully connected to Redis (addr=%s)", cfg.Redis.Addr)
	}
	cancelPing()

	// Репозитории (с обёрткой метрик БД, если метрики включены)
	var executor dbmetrics.DBExecutor = db
	if cfg.Metrics.Enabled {
		executor = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	}

	bookingRepository := bookingRepo.NewRepository(executor)
	availabilityRepository := availabilityRepo.NewRepository(executor)
	consultantRepository := consultantRepo.NewRepository(executor)

	// Кеш занятых времен
	blockedCache := cache.NewBlockedTimesCache(rdb, time.Minute)

	// Шина событий и webhook-уведомления
	bus := events.NewBus(log, metricsCollector)
	if cfg.Notifications.WebhookURL != "" {
		notifier := notifyservice.NewClient(
			cfg.Notifications.WebhookURL,
			time.Duration(cfg.Notifications.Timeout)*time.Second,
			log,
		)
		bus.Subscribe(notifier)
		log.Info("Webhook notifications enabled (url=%s, timeout=%ds)",
			cfg.Notifications.WebhookURL, cfg.Notifications.Timeout)
	}

	busCtx, busCancel := context.WithCancel(context.Background())
	go bus.Run(busCtx)

	// Rate limiter
	limiterStore := ratelimit.NewStore(rdb)
	limiterSvc := limiter.New(limiterStore, log, metricsCollector, limiter.RealTimeProvider{}, limiter.Config{
		ReadPerWindow:  int64(cfg.RateLimit.ReadPerWindow),
		WritePerWindow: int64(cfg.RateLimit.WritePerWindow),
		Window:         time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
		LockRetries:    cfg.RateLimit.LockRetries,
		LockRetryDelay: time.Duration(cfg.RateLimit.LockRetryDelayMS) * time.Millisecond,
		LockTTL:        time.Duration(cfg.RateLimit.LockTTLSeconds) * time.Second,
	})
	if cfg.RateLimit.Enabled {
		log.Info("Rate limiter enabled (read=%d/%ds, write=%d/%ds)",
			cfg.RateLimit.ReadPerWindow, cfg.RateLimit.WindowSeconds,
			cfg.RateLimit.WritePerWindow, cfg.RateLimit.WindowSeconds)
	}

	schedulingConfig := domain.SchedulingConfig{
		SlotDurationMinutes: cfg.Scheduling.SlotDurationMinutes,
		BufferMinutes:       cfg.Scheduling.BufferMinutes,
		MaxAdvanceDays:      cfg.Scheduling.MaxAdvanceDays,
	}

	// Сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, bus, blockedCache, log)
	scheduleSvc := scheduleService.NewService(availabilityRepository, consultantRepository, log)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		consultantRepository,
		bus,
		blockedCache,
		schedulingConfig,
		metricsCollector,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		consultantRepository,
		blockedCache,
		schedulingConfig,
		metricsCollector,
		log,
	)

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	getConsultantBookings := getConsultantBookingsHandler.NewHandler(bookingSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)

	// Роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	rl := middleware.NewRateLimit(limiterSvc, log, cfg.RateLimit.Enabled, cfg.RateLimit.TrustProxyHeaders)
	api := r.PathPrefix("/api/v1").Subrouter()

	// Read endpoints
	api.Handle("/consultants/{consultantId}/available-slots",
		rl.Wrap(limiter.ClassRead, http.HandlerFunc(getAvailableSlots.Handle))).Methods(http.MethodGet)
	api.Handle("/bookings/{bookingId}",
		rl.Wrap(limiter.ClassRead, http.HandlerFunc(getBooking.Handle))).Methods(http.MethodGet)
	api.Handle("/consultants/{consultantId}/bookings",
		rl.Wrap(limiter.ClassRead, http.HandlerFunc(getConsultantBookings.Handle))).Methods(http.MethodGet)
	api.Handle("/consultants/{consultantId}/schedule",
		rl.Wrap(limiter.ClassRead, http.HandlerFunc(getSchedule.Handle))).Methods(http.MethodGet)

	// Write endpoints
	api.Handle("/bookings",
		rl.Wrap(limiter.ClassWrite, http.HandlerFunc(createBooking.Handle))).Methods(http.MethodPost)
	api.Handle("/bookings/{bookingId}/cancel",
		rl.Wrap(limiter.ClassWrite, http.HandlerFunc(cancelBooking.Handle))).Methods(http.MethodPatch)
	api.Handle("/bookings/{bookingId}/confirm",
		rl.Wrap(limiter.ClassWrite, http.HandlerFunc(confirmBooking.Handle))).Methods(http.MethodPatch)
	api.Handle("/consultants/{consultantId}/schedule",
		rl.Wrap(limiter.ClassWrite, http.HandlerFunc(updateSchedule.Handle))).Methods(http.MethodPut)

	// HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем шину событий после сервера, чтобы не потерять события
	// завершившихся запросов
	busCancel()
	<-bus.Done()

	log.Info("Server stopped gracefully")
}
