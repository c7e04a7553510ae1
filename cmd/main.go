package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	applyPreviousHandler "github.com/m04kA/lab-booking-service/internal/api/handlers/apply_previous_bookings"
	clearBookedSlotsHandler "github.com/m04kA/lab-booking-service/internal/api/handlers/clear_booked_slots"
	clearPCsHandler "github.com/m04kA/lab-booking-service/internal/api/handlers/clear_pcs"
	createBookingHandler "github.com/m04kA/lab-booking-service/internal/api/handlers/create_booking"
	createPCHandler "github.com/m04kA/lab-booking-service/internal/api/handlers/create_pc"
	deleteBookingHandler "github.com/m04kA/lab-booking-service/internal/api/handlers/delete_booking"
	deletePCHandler "github.com/m04kA/lab-booking-service/internal/api/handlers/delete_pc"
	getAvailabilityHandler "github.com/m04kA/lab-booking-service/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/lab-booking-service/internal/api/handlers/get_booking"
	getPreviousHandler "github.com/m04kA/lab-booking-service/internal/api/handlers/get_previous_bookings"
	getSlotsHandler "github.com/m04kA/lab-booking-service/internal/api/handlers/get_slots"
	listBookingsHandler "github.com/m04kA/lab-booking-service/internal/api/handlers/list_bookings"
	listPCsHandler "github.com/m04kA/lab-booking-service/internal/api/handlers/list_pcs"
	listPCsByRowHandler "github.com/m04kA/lab-booking-service/internal/api/handlers/list_pcs_by_row"
	streamEventsHandler "github.com/m04kA/lab-booking-service/internal/api/handlers/stream_events"
	updateBookingHandler "github.com/m04kA/lab-booking-service/internal/api/handlers/update_booking"
	updatePCHandler "github.com/m04kA/lab-booking-service/internal/api/handlers/update_pc"
	"github.com/m04kA/lab-booking-service/internal/api/middleware"
	"github.com/m04kA/lab-booking-service/internal/app"
	"github.com/m04kA/lab-booking-service/internal/config"
	"github.com/m04kA/lab-booking-service/internal/infra/cache/idempotency"
	bookingRepo "github.com/m04kA/lab-booking-service/internal/infra/storage/booking"
	"github.com/m04kA/lab-booking-service/internal/infra/storage/memory"
	pcRepo "github.com/m04kA/lab-booking-service/internal/infra/storage/pc"
	availabilityService "github.com/m04kA/lab-booking-service/internal/service/availability"
	bookingsService "github.com/m04kA/lab-booking-service/internal/service/bookings"
	pcsService "github.com/m04kA/lab-booking-service/internal/service/pcs"
	applyPreviousUC "github.com/m04kA/lab-booking-service/internal/usecase/apply_previous_bookings"
	clearBookedSlotsUC "github.com/m04kA/lab-booking-service/internal/usecase/clear_booked_slots"
	createBookingUC "github.com/m04kA/lab-booking-service/internal/usecase/create_booking"
	"github.com/m04kA/lab-booking-service/pkg/dbmetrics"
	"github.com/m04kA/lab-booking-service/pkg/logger"
	"github.com/m04kA/lab-booking-service/pkg/metrics"
	"github.com/m04kA/lab-booking-service/pkg/txmanager"
)

// Хранилище выбирается в конфиге: PostgreSQL или in-memory
type pcStore interface {
	pcsService.PCRepository
}

type bookingStore interface {
	bookingsService.BookingRepository
	createBookingUC.BookingRepository
}

type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level, cfg.Logs.Format)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting lab-booking-service...")
	log.Info("Configuration loaded from %s", *configPath)

	location, err := cfg.Lab.Location()
	if err != nil {
		log.Fatal("Invalid lab timezone: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем хранилище
	var (
		pcRepository      pcStore
		bookingRepository bookingStore
		txMgr             txManager
	)

	switch cfg.Database.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		pcRepository = store.PCs()
		bookingRepository = store.Bookings()
		txMgr = store.TxManager()
		log.Warn("Using in-memory storage: data is lost on restart")

	default:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		err = db.PingContext(pingCtx)
		cancelPing()
		if err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		if cfg.Database.AutoMigrate {
			migrator, err := app.NewMigrator(db, log)
			if err != nil {
				log.Fatal("Failed to initialize migrator: %v", err)
			}
			if err := migrator.Run(context.Background()); err != nil {
				log.Fatal("Failed to apply migrations: %v", err)
			}
		}

		// metricsCollector может быть nil: обёртка тогда только прокидывает запросы
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		pcRepository = pcRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		pcRepository,
		bookingRepository,
		metricsCollector,
		log,
		cfg.Lab.EventBufferSize,
	)
	pcSvc := pcsService.NewService(pcRepository, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		pcRepository,
		availabilitySvc,
		txMgr,
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		pcRepository,
		idempotency.New(cfg.Idempotency.TTL()),
		availabilitySvc,
		txMgr,
		metricsCollector,
		log,
	)
	applyPreviousUseCase := applyPreviousUC.NewUseCase(
		bookingRepository,
		pcRepository,
		createBookingUseCase,
		metricsCollector,
		log,
	)
	clearBookedSlotsUseCase := clearBookedSlotsUC.NewUseCase(
		bookingRepository,
		bookingSvc,
		availabilitySvc,
		metricsCollector,
		log,
	)

	// Фоновое завершение прошедших слотов
	scheduler := app.NewScheduler(bookingSvc, location, cfg.Lab.CompletionInterval(), log)
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()
	scheduler.Start(schedulerCtx)

	// Инициализируем handlers
	listPCs := listPCsHandler.NewHandler(pcSvc, log)
	listPCsByRow := listPCsByRowHandler.NewHandler(pcSvc, log)
	createPC := createPCHandler.NewHandler(pcSvc, log)
	updatePC := updatePCHandler.NewHandler(pcSvc, log)
	deletePC := deletePCHandler.NewHandler(pcSvc, log)
	clearPCs := clearPCsHandler.NewHandler(pcSvc, log)

	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)

	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	getPrevious := getPreviousHandler.NewHandler(applyPreviousUseCase, log)
	applyPrevious := applyPreviousHandler.NewHandler(applyPreviousUseCase, log)
	clearBookedSlots := clearBookedSlotsHandler.NewHandler(clearBookedSlotsUseCase, log)
	getSlots := getSlotsHandler.NewHandler(location)
	streamEvents := streamEventsHandler.NewHandler(availabilitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
		r.Use(middleware.RateLimiter(limiter))
		log.Info("Rate limiting enabled (%.1f rps, burst %d)", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix(cfg.Server.APIPrefix).Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/lab/slots", getSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/lab/events", streamEvents.Handle).Methods(http.MethodGet)
	api.HandleFunc("/lab/availability/{date}", getAvailability.Handle).Methods(http.MethodGet)

	// --- ПК ---
	api.HandleFunc("/lab/pcs", listPCs.Handle).Methods(http.MethodGet)
	api.HandleFunc("/lab/pcs/by-row", listPCsByRow.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	// Фиксированные пути регистрируются раньше /lab/bookings/{bookingId}
	api.HandleFunc("/lab/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/lab/bookings/previous", getPrevious.Handle).Methods(http.MethodGet)
	api.HandleFunc("/lab/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- ПК ---
	protected.HandleFunc("/lab/pcs", createPC.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/lab/pcs/clear-all", clearPCs.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/lab/pcs/{pcId:[0-9]+}", updatePC.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/lab/pcs/{pcId:[0-9]+}", deletePC.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	protected.HandleFunc("/lab/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/lab/bookings/apply-previous", applyPrevious.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/lab/bookings/clear-bulk", clearBookedSlots.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/lab/bookings/{bookingId:[0-9]+}", updateBooking.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/lab/bookings/{bookingId:[0-9]+}", deleteBooking.Handle).Methods(http.MethodDelete)

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	scheduler.Stop()

	// Закрываем SSE подписки, чтобы Shutdown не ждал открытые потоки
	availabilitySvc.Close()

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

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
