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

	cancelBookingHandler "github.com/m04kA/IB-AvailabilityService/internal/api/handlers/cancel_booking"
	cancelBookingByTokenHandler "github.com/m04kA/IB-AvailabilityService/internal/api/handlers/cancel_booking_by_token"
	createBookingHandler "github.com/m04kA/IB-AvailabilityService/internal/api/handlers/create_booking"
	deleteAvailabilityHandler "github.com/m04kA/IB-AvailabilityService/internal/api/handlers/delete_availability"
	getAvailabilityHandler "github.com/m04kA/IB-AvailabilityService/internal/api/handlers/get_availability"
	getBookingByTokenHandler "github.com/m04kA/IB-AvailabilityService/internal/api/handlers/get_booking_by_token"
	getProfileBookingsHandler "github.com/m04kA/IB-AvailabilityService/internal/api/handlers/get_profile_bookings"
	getSlotsHandler "github.com/m04kA/IB-AvailabilityService/internal/api/handlers/get_slots"
	updateAvailabilityHandler "github.com/m04kA/IB-AvailabilityService/internal/api/handlers/update_availability"
	"github.com/m04kA/IB-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/IB-AvailabilityService/internal/config"
	availabilityRepo "github.com/m04kA/IB-AvailabilityService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/IB-AvailabilityService/internal/infra/storage/booking"
	profileServiceClient "github.com/m04kA/IB-AvailabilityService/internal/integrations/profileservice"
	availabilityService "github.com/m04kA/IB-AvailabilityService/internal/service/availability"
	bookingsService "github.com/m04kA/IB-AvailabilityService/internal/service/bookings"
	createBookingUC "github.com/m04kA/IB-AvailabilityService/internal/usecase/create_booking"
	generateSlotsUC "github.com/m04kA/IB-AvailabilityService/internal/usecase/generate_slots"
	"github.com/m04kA/IB-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/IB-AvailabilityService/pkg/logger"
	"github.com/m04kA/IB-AvailabilityService/pkg/metrics"
	"github.com/m04kA/IB-AvailabilityService/pkg/txmanager"
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

	log.Info("Starting IB-AvailabilityService...")
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

	// Инициализируем клиент ProfileService
	profileClient := profileServiceClient.NewClient(
		cfg.ProfileService.URL,
		time.Duration(cfg.ProfileService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (ProfileService=%s timeout=%ds)",
		cfg.ProfileService.URL, cfg.ProfileService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		availabilityRepository *availabilityRepo.Repository
		bookingRepository      *bookingRepo.Repository
		txMgr                  *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		availabilityRepository = availabilityRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = txmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		profileClient,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		profileClient,
		log,
	)

	// Инициализируем use cases
	generateSlotsUseCase := generateSlotsUC.NewUseCase(
		availabilityRepository,
		bookingRepository,
		profileClient,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		availabilityRepository,
		bookingRepository,
		profileClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(availabilitySvc, log)
	deleteAvailability := deleteAvailabilityHandler.NewHandler(availabilitySvc, log)
	getSlots := getSlotsHandler.NewHandler(generateSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBookingByToken := getBookingByTokenHandler.NewHandler(bookingSvc, log)
	cancelBookingByToken := cancelBookingByTokenHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getProfileBookings := getProfileBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расписание профиля в канонической форме
	api.HandleFunc("/profiles/{profileId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Доступные слоты для бронирования
	api.HandleFunc("/profiles/{profileId}/slots",
		getSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования (рекрутеры приходят без аккаунта)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Просмотр и отмена бронирования по manage-токену
	api.HandleFunc("/bookings/manage/{token}",
		getBookingByToken.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/manage/{token}/cancel",
		cancelBookingByToken.Handle).Methods(http.MethodPatch)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Расписание (для владельца профиля) ---
	protected.HandleFunc("/profiles/{profileId}/availability",
		updateAvailability.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/profiles/{profileId}/availability",
		deleteAvailability.Handle).Methods(http.MethodDelete)

	// --- Бронирования (для владельца профиля) ---
	protected.HandleFunc("/profiles/{profileId}/bookings",
		getProfileBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel",
		cancelBooking.Handle).Methods(http.MethodPatch)

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

	log.Info("Server stopped gracefully")
}
