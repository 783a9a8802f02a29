package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/finplanner/advisor-booking-service/internal/config"
	provisioningQueue "github.com/finplanner/advisor-booking-service/internal/infra/queue/provisioning"
	"github.com/finplanner/advisor-booking-service/internal/infra/redisclient"
	appointmentRepo "github.com/finplanner/advisor-booking-service/internal/infra/storage/appointment"
	"github.com/finplanner/advisor-booking-service/internal/integrations/calendarbridge"
	notifierClient "github.com/finplanner/advisor-booking-service/internal/integrations/notifier"
	provisioningWorker "github.com/finplanner/advisor-booking-service/internal/worker/provisioning"
	"github.com/finplanner/advisor-booking-service/pkg/logger"
	"github.com/finplanner/advisor-booking-service/pkg/metrics"
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

	log.Info("Starting provisioning worker...")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName + "-worker")
	}

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

	// Подключаемся к Redis
	rdb, err := redisclient.New(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to redis: %v", err)
	}
	defer rdb.Close()
	log.Info("Successfully connected to redis (addr=%s)", cfg.Redis.Addr)

	// Очередь задач
	queue := provisioningQueue.NewQueue(
		rdb,
		cfg.Provisioning.QueueKey,
		time.Duration(cfg.Provisioning.DedupTTL)*time.Second,
		time.Duration(cfg.Provisioning.DequeueBlock)*time.Second,
		log,
	)

	// Репозиторий записей
	appointmentRepository := appointmentRepo.NewRepository(db)

	// Клиенты шлюза календаря и уведомлений
	calendar := calendarbridge.NewClient(calendarbridge.Config{
		BaseURL:         cfg.CalendarBridge.URL,
		Timeout:         time.Duration(cfg.CalendarBridge.Timeout) * time.Second,
		ApplicationName: cfg.CalendarBridge.ApplicationName,
		DefaultTimezone: cfg.CalendarBridge.DefaultTimezone,
	}, log)

	notifier := notifierClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)

	// Воркер
	worker := provisioningWorker.NewWorker(
		queue,
		appointmentRepository,
		calendar,
		notifier,
		metricsCollector,
		cfg.Provisioning.MaxAttempts,
		log,
	)

	// Останавливаемся по сигналу
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	worker.Run(rootCtx)

	log.Info("Provisioning worker exited")
}
