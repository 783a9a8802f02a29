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

	addAdvisorNotesHandler "github.com/finplanner/advisor-booking-service/internal/api/handlers/add_advisor_notes"
	addAvailabilityHandler "github.com/finplanner/advisor-booking-service/internal/api/handlers/add_availability"
	cancelAppointmentHandler "github.com/finplanner/advisor-booking-service/internal/api/handlers/cancel_appointment"
	completeOAuthHandler "github.com/finplanner/advisor-booking-service/internal/api/handlers/complete_oauth"
	createAppointmentHandler "github.com/finplanner/advisor-booking-service/internal/api/handlers/create_appointment"
	getAdvisorAppointmentsHandler "github.com/finplanner/advisor-booking-service/internal/api/handlers/get_advisor_appointments"
	getAppointmentHandler "github.com/finplanner/advisor-booking-service/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/finplanner/advisor-booking-service/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/finplanner/advisor-booking-service/internal/api/handlers/get_available_slots"
	getUserAppointmentsHandler "github.com/finplanner/advisor-booking-service/internal/api/handlers/get_user_appointments"
	removeAvailabilityHandler "github.com/finplanner/advisor-booking-service/internal/api/handlers/remove_availability"
	updateAppointmentStatusHandler "github.com/finplanner/advisor-booking-service/internal/api/handlers/update_appointment_status"
	"github.com/finplanner/advisor-booking-service/internal/api/middleware"
	"github.com/finplanner/advisor-booking-service/internal/config"
	provisioningQueue "github.com/finplanner/advisor-booking-service/internal/infra/queue/provisioning"
	"github.com/finplanner/advisor-booking-service/internal/infra/redisclient"
	advisorRepo "github.com/finplanner/advisor-booking-service/internal/infra/storage/advisor"
	appointmentRepo "github.com/finplanner/advisor-booking-service/internal/infra/storage/appointment"
	availabilityRepo "github.com/finplanner/advisor-booking-service/internal/infra/storage/availability"
	planRepo "github.com/finplanner/advisor-booking-service/internal/infra/storage/plan"
	notifierClient "github.com/finplanner/advisor-booking-service/internal/integrations/notifier"
	appointmentsService "github.com/finplanner/advisor-booking-service/internal/service/appointments"
	availabilityService "github.com/finplanner/advisor-booking-service/internal/service/availability"
	createBookingUC "github.com/finplanner/advisor-booking-service/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/finplanner/advisor-booking-service/internal/usecase/get_available_slots"
	"github.com/finplanner/advisor-booking-service/pkg/dbmetrics"
	"github.com/finplanner/advisor-booking-service/pkg/logger"
	"github.com/finplanner/advisor-booking-service/pkg/metrics"
	"github.com/finplanner/advisor-booking-service/pkg/simpletxmanager"
	"github.com/finplanner/advisor-booking-service/pkg/txmanager"
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

	log.Info("Starting advisor-booking-service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Подключаемся к Redis (очередь задач провижининга)
	rdb, err := redisclient.New(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to redis: %v", err)
	}
	defer rdb.Close()
	log.Info("Successfully connected to redis (addr=%s)", cfg.Redis.Addr)

	// Инициализируем интеграционных клиентов
	notifier := notifierClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (Notifier=%s timeout=%ds)",
		cfg.Notifier.URL, cfg.Notifier.Timeout)

	// Очередь задач на выдачу ссылок на встречи
	queue := provisioningQueue.NewQueue(
		rdb,
		cfg.Provisioning.QueueKey,
		time.Duration(cfg.Provisioning.DedupTTL)*time.Second,
		time.Duration(cfg.Provisioning.DequeueBlock)*time.Second,
		log,
	)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository  *appointmentRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		advisorRepository      *advisorRepo.Repository
		planRepository         *planRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		advisorRepository = advisorRepo.NewRepository(wrappedDB)
		planRepository = planRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		advisorRepository = advisorRepo.NewRepository(db)
		planRepository = planRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		advisorRepository,
		queue,
		notifier,
		log,
	)
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		advisorRepository,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		appointmentRepository,
		advisorRepository,
		planRepository,
		queue,
		notifier,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.New(
		advisorRepository,
		availabilityRepository,
		appointmentRepository,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createBookingUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	addAdvisorNotes := addAdvisorNotesHandler.NewHandler(appointmentSvc, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentSvc, log)
	getAdvisorAppointments := getAdvisorAppointmentsHandler.NewHandler(appointmentSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	addAvailability := addAvailabilityHandler.NewHandler(availabilitySvc, log)
	removeAvailability := removeAvailabilityHandler.NewHandler(availabilitySvc, log)
	completeOAuth := completeOAuthHandler.NewHandler(appointmentSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты консультанта
	api.HandleFunc("/advisors/{advisorId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи на консультации ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/notes", addAdvisorNotes.Handle).Methods(http.MethodPut)

	// --- История записей ---
	protected.HandleFunc("/users/{userId}/appointments", getUserAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/advisors/{advisorId}/appointments", getAdvisorAppointments.Handle).Methods(http.MethodGet)

	// --- Окна доступности консультанта ---
	protected.HandleFunc("/advisors/{advisorId}/availability", getAvailability.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/advisors/{advisorId}/availability", addAvailability.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/advisors/{advisorId}/availability/{windowId}", removeAvailability.Handle).Methods(http.MethodDelete)

	// --- OAuth календаря ---
	protected.HandleFunc("/oauth/google/complete", completeOAuth.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
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

	log.Info("Server exited")
}
