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

	applyDelayHandler "github.com/m04kA/Clinic-QueueService/internal/api/handlers/apply_delay"
	blockDayHandler "github.com/m04kA/Clinic-QueueService/internal/api/handlers/block_day"
	blockSlotHandler "github.com/m04kA/Clinic-QueueService/internal/api/handlers/block_slot"
	cancelBookingHandler "github.com/m04kA/Clinic-QueueService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/Clinic-QueueService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/Clinic-QueueService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/Clinic-QueueService/internal/api/handlers/get_booking"
	getDayQueueHandler "github.com/m04kA/Clinic-QueueService/internal/api/handlers/get_day_queue"
	getPatientBookingsHandler "github.com/m04kA/Clinic-QueueService/internal/api/handlers/get_patient_bookings"
	markSeenHandler "github.com/m04kA/Clinic-QueueService/internal/api/handlers/mark_seen"
	"github.com/m04kA/Clinic-QueueService/internal/api/middleware"
	"github.com/m04kA/Clinic-QueueService/internal/config"
	blockRepo "github.com/m04kA/Clinic-QueueService/internal/infra/storage/block"
	bookingRepo "github.com/m04kA/Clinic-QueueService/internal/infra/storage/booking"
	notifyServiceClient "github.com/m04kA/Clinic-QueueService/internal/integrations/notifyservice"
	blocksService "github.com/m04kA/Clinic-QueueService/internal/service/blocks"
	queueService "github.com/m04kA/Clinic-QueueService/internal/service/queue"
	admitBookingUC "github.com/m04kA/Clinic-QueueService/internal/usecase/admit_booking"
	getAvailabilityUC "github.com/m04kA/Clinic-QueueService/internal/usecase/get_availability"
	"github.com/m04kA/Clinic-QueueService/pkg/dbmetrics"
	"github.com/m04kA/Clinic-QueueService/pkg/logger"
	"github.com/m04kA/Clinic-QueueService/pkg/metrics"
	"github.com/m04kA/Clinic-QueueService/pkg/simpletxmanager"
	"github.com/m04kA/Clinic-QueueService/pkg/txmanager"
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

	log.Info("Starting Clinic-QueueService...")
	log.Info("Configuration loaded from config.toml")

	// Собираем каталог слотов из конфигурации
	catalog, err := cfg.Clinic.ToCatalog()
	if err != nil {
		log.Fatal("Failed to build slot catalog: %v", err)
	}
	log.Info("Slot catalog built: %d slots", len(catalog.All()))

	var closedWeekday *time.Weekday
	if wd, ok := cfg.Clinic.ClosedWeekdayValue(); ok {
		closedWeekday = &wd
		log.Info("Clinic is closed on %s", wd)
	}

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

	// Инициализируем клиент шлюза уведомлений
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Notification gateway client initialized (url=%s, timeout=%ds)",
		cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		blockRepository   *blockRepo.Repository
		txMgr             admitBookingUC.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		blockRepository = blockRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		blockRepository = blockRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	queueSvc := queueService.NewService(
		bookingRepository,
		notifyClient,
		catalog,
		log,
	)
	blockSvc := blocksService.NewService(
		blockRepository,
		catalog,
		log,
	)

	// Инициализируем use cases
	admitBookingUseCase := admitBookingUC.NewUseCase(
		bookingRepository,
		blockRepository,
		notifyClient,
		txMgr,
		catalog,
		closedWeekday,
		cfg.Clinic.LeadTimeMinutes,
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		blockRepository,
		catalog,
		closedWeekday,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(admitBookingUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getBooking := getBookingHandler.NewHandler(queueSvc, log)
	getPatientBookings := getPatientBookingsHandler.NewHandler(queueSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(queueSvc, log)
	markSeen := markSeenHandler.NewHandler(queueSvc, log)
	applyDelay := applyDelayHandler.NewHandler(queueSvc, log)
	getDayQueue := getDayQueueHandler.NewHandler(queueSvc, log)
	blockDay := blockDayHandler.NewHandler(blockSvc, log)
	blockSlot := blockSlotHandler.NewHandler(blockSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
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
	// PUBLIC ROUTES (заголовок X-Staff-ID опционален)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.Identify)

	// Доступность слотов на дату
	public.HandleFunc("/availability/{date}", getAvailability.Handle).Methods(http.MethodGet)

	// Создание записи (экстренная запись требует X-Staff-ID)
	public.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// История записей по телефону
	public.HandleFunc("/bookings", getPatientBookings.Handle).Methods(http.MethodGet)

	// Получение записи по ID
	public.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена записи
	public.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Staff-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Очередь дня ---
	protected.HandleFunc("/queue/{date}", getDayQueue.Handle).Methods(http.MethodGet)

	// Отметка приема врачом
	protected.HandleFunc("/bookings/{bookingId}/seen", markSeen.Handle).Methods(http.MethodPatch)

	// Задержка приема
	protected.HandleFunc("/bookings/{bookingId}/delay", applyDelay.Handle).Methods(http.MethodPatch)

	// --- Блокировки ---
	protected.HandleFunc("/blocks/days", blockDay.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/blocks/slots", blockSlot.Handle).Methods(http.MethodPost)

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
