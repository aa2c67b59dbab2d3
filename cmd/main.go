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

	cancelOccurrenceHandler "github.com/m04kA/SMC-ArenaService/internal/api/handlers/cancel_occurrence"
	checkAvailabilityHandler "github.com/m04kA/SMC-ArenaService/internal/api/handlers/check_availability"
	createSeriesHandler "github.com/m04kA/SMC-ArenaService/internal/api/handlers/create_series"
	deleteOccurrenceHandler "github.com/m04kA/SMC-ArenaService/internal/api/handlers/delete_occurrence"
	getBookingHandler "github.com/m04kA/SMC-ArenaService/internal/api/handlers/get_booking"
	getCourtBookingsHandler "github.com/m04kA/SMC-ArenaService/internal/api/handlers/get_court_bookings"
	getCourtTariffsHandler "github.com/m04kA/SMC-ArenaService/internal/api/handlers/get_court_tariffs"
	priceDivergenceHandler "github.com/m04kA/SMC-ArenaService/internal/api/handlers/price_divergence"
	updateOccurrenceHandler "github.com/m04kA/SMC-ArenaService/internal/api/handlers/update_occurrence"
	"github.com/m04kA/SMC-ArenaService/internal/api/middleware"
	"github.com/m04kA/SMC-ArenaService/internal/config"
	blackoutRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/blackout"
	bookingRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/booking"
	courtRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/court"
	pricebandRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/priceband"
	bookingsService "github.com/m04kA/SMC-ArenaService/internal/service/bookings"
	tariffsService "github.com/m04kA/SMC-ArenaService/internal/service/tariffs"
	checkAvailabilityUC "github.com/m04kA/SMC-ArenaService/internal/usecase/check_availability"
	createSeriesUC "github.com/m04kA/SMC-ArenaService/internal/usecase/create_series"
	evaluatePriceDivergenceUC "github.com/m04kA/SMC-ArenaService/internal/usecase/evaluate_price_divergence"
	updateOccurrenceUC "github.com/m04kA/SMC-ArenaService/internal/usecase/update_occurrence"
	"github.com/m04kA/SMC-ArenaService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ArenaService/pkg/logger"
	"github.com/m04kA/SMC-ArenaService/pkg/metrics"
	"github.com/m04kA/SMC-ArenaService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ArenaService/pkg/txmanager"
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

	log.Info("Starting SMC-ArenaService...")
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

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository   *bookingRepo.Repository
		courtRepository     *courtRepo.Repository
		pricebandRepository *pricebandRepo.Repository
		blackoutRepository  *blackoutRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		courtRepository = courtRepo.NewRepository(wrappedDB)
		pricebandRepository = pricebandRepo.NewRepository(wrappedDB)
		blackoutRepository = blackoutRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		courtRepository = courtRepo.NewRepository(db)
		pricebandRepository = pricebandRepo.NewRepository(db)
		blackoutRepository = blackoutRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		courtRepository,
		txMgr,
		log,
	)
	tariffSvc := tariffsService.NewService(
		pricebandRepository,
		courtRepository,
		log,
	)

	// Инициализируем use cases
	createSeriesUseCase := createSeriesUC.NewUseCase(
		bookingRepository,
		courtRepository,
		pricebandRepository,
		blackoutRepository,
		txMgr,
		log,
	)

	updateOccurrenceUseCase := updateOccurrenceUC.NewUseCase(
		bookingRepository,
		courtRepository,
		pricebandRepository,
		blackoutRepository,
		txMgr,
		log,
	)

	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		bookingRepository,
		courtRepository,
		blackoutRepository,
		log,
	)

	evaluatePriceDivergenceUseCase := evaluatePriceDivergenceUC.NewUseCase(
		bookingRepository,
		pricebandRepository,
		log,
	)

	// Инициализируем handlers
	createSeries := createSeriesHandler.NewHandler(createSeriesUseCase, log)
	updateOccurrence := updateOccurrenceHandler.NewHandler(updateOccurrenceUseCase, log)
	cancelOccurrence := cancelOccurrenceHandler.NewHandler(bookingSvc, log)
	deleteOccurrence := deleteOccurrenceHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getCourtBookings := getCourtBookingsHandler.NewHandler(bookingSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	priceDivergence := priceDivergenceHandler.NewHandler(evaluatePriceDivergenceUseCase, log)
	getCourtTariffs := getCourtTariffsHandler.NewHandler(tariffSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Проверка доступности слота
	api.HandleFunc("/courts/{courtId}/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// Тарифные полосы корта
	api.HandleFunc("/courts/{courtId}/tariffs", getCourtTariffs.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание разового бронирования или регулярной серии
	protected.HandleFunc("/bookings/series", createSeries.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Изменение вхождения или хвоста серии
	protected.HandleFunc("/bookings/{bookingId}", updateOccurrence.Handle).Methods(http.MethodPatch)

	// Отмена вхождения или хвоста серии
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelOccurrence.Handle).Methods(http.MethodPatch)

	// Удаление вхождения или хвоста серии
	protected.HandleFunc("/bookings/{bookingId}", deleteOccurrence.Handle).Methods(http.MethodDelete)

	// Сверка снапшота цены с текущими тарифами
	protected.HandleFunc("/bookings/{bookingId}/price-divergence", priceDivergence.Handle).Methods(http.MethodGet)

	// --- Корты ---
	// Расписание корта
	protected.HandleFunc("/courts/{courtId}/bookings", getCourtBookings.Handle).Methods(http.MethodGet)

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
