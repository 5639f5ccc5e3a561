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
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/create_booking"
	createGroupBookingHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/create_group_booking"
	createRecurringSeriesHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/create_recurring_series"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/get_booking"
	getCompanyBookingsHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/get_company_bookings"
	getUserBookingsHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/get_user_bookings"
	manageBansHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/manage_bans"
	manageCatalogHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/manage_catalog"
	manageGroupHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/manage_group"
	manageRecurringHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/manage_recurring"
	requestEarlierSlotHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/request_earlier_slot"
	"github.com/m04kA/SMC-SalonScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-SalonScheduler/internal/config"
	"github.com/m04kA/SMC-SalonScheduler/internal/infra/cache/availability"
	banRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/ban"
	bookingRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/catalog"
	earlierRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/earlier"
	groupRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/group"
	lockRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/lock"
	recurringRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/recurring"
	"github.com/m04kA/SMC-SalonScheduler/internal/integrations/events"
	bansService "github.com/m04kA/SMC-SalonScheduler/internal/service/bans"
	bookingsService "github.com/m04kA/SMC-SalonScheduler/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-SalonScheduler/internal/service/catalog"
	earlierService "github.com/m04kA/SMC-SalonScheduler/internal/service/earlier"
	groupsService "github.com/m04kA/SMC-SalonScheduler/internal/service/groups"
	recurringService "github.com/m04kA/SMC-SalonScheduler/internal/service/recurring"
	cancelBookingUC "github.com/m04kA/SMC-SalonScheduler/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/SMC-SalonScheduler/internal/usecase/create_booking"
	createGroupBookingUC "github.com/m04kA/SMC-SalonScheduler/internal/usecase/create_group_booking"
	createRecurringSeriesUC "github.com/m04kA/SMC-SalonScheduler/internal/usecase/create_recurring_series"
	getAvailabilityUC "github.com/m04kA/SMC-SalonScheduler/internal/usecase/get_availability"
	requestEarlierSlotUC "github.com/m04kA/SMC-SalonScheduler/internal/usecase/request_earlier_slot"
	"github.com/m04kA/SMC-SalonScheduler/internal/worker"
	"github.com/m04kA/SMC-SalonScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonScheduler/pkg/keylock"
	"github.com/m04kA/SMC-SalonScheduler/pkg/logger"
	"github.com/m04kA/SMC-SalonScheduler/pkg/metrics"
	"github.com/m04kA/SMC-SalonScheduler/pkg/txmanager"
)

// eventPublisher общий интерфейс KafkaPublisher и NopPublisher
type eventPublisher interface {
	Publish(ctx context.Context, e events.Event) error
	Close() error
}

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

	log.Info("Starting SMC-SalonScheduler...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Booking.Timezone, err)
	}
	log.Info("Working timezone: %s, cancellation window: %s", location, cfg.Booking.CancellationWindow())

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Кэш доступности. Интерфейсы остаются nil, если кэш выключен.
	var (
		readCache    getAvailabilityUC.AvailabilityCache
		createCache  createBookingUC.AvailabilityInvalidator
		cancelCache  cancelBookingUC.AvailabilityInvalidator
		catalogCache catalogService.AvailabilityInvalidator
		redisClient  *redis.Client
	)
	if cfg.Cache.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is not reachable at %s, availability is served from the database until it recovers: %v",
				cfg.Cache.Addr, err)
		}
		cancelPing()

		availabilityCache := availability.New(redisClient, cfg.Cache.TTL())
		readCache, createCache, cancelCache, catalogCache = availabilityCache, availabilityCache, availabilityCache, availabilityCache
		log.Info("Availability cache enabled (addr=%s, ttl=%s)", cfg.Cache.Addr, cfg.Cache.TTL())
	}

	// События бронирований
	var publisher eventPublisher = events.NopPublisher{}
	if cfg.Events.Enabled {
		publisher = events.NewKafkaPublisher(cfg.Events.Brokers, cfg.Events.Topic)
		log.Info("Booking events enabled (brokers=%v, topic=%s)", cfg.Events.Brokers, cfg.Events.Topic)
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	banRepository := banRepo.NewRepository(wrappedDB)
	lockRepository := lockRepo.NewRepository(wrappedDB)
	groupRepository := groupRepo.NewRepository(wrappedDB)
	recurringRepository := recurringRepo.NewRepository(wrappedDB)
	earlierRepository := earlierRepo.NewRepository(wrappedDB)

	txMgr := txmanager.NewTransactionManager(wrappedDB)
	staffLocker := keylock.New()

	// Наблюдатель освободившихся слотов
	earlierWatcher := earlierService.NewWatcher(
		earlierRepository,
		txMgr,
		publisher,
		metricsCollector,
		location,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		banRepository,
		lockRepository,
		staffLocker,
		txMgr,
		createCache,
		publisher,
		metricsCollector,
		location,
		log,
	)

	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		recurringRepository,
		txMgr,
		cancelCache,
		publisher,
		earlierWatcher,
		metricsCollector,
		cfg.Booking.CancellationWindow(),
		location,
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		catalogRepository,
		bookingRepository,
		readCache,
		metricsCollector,
		location,
		log,
	)

	createRecurringSeriesUseCase := createRecurringSeriesUC.NewUseCase(
		catalogRepository,
		recurringRepository,
		txMgr,
		location,
		log,
	)

	createGroupBookingUseCase := createGroupBookingUC.NewUseCase(
		createBookingUseCase,
		bookingRepository,
		groupRepository,
		txMgr,
		log,
	)

	requestEarlierSlotUseCase := requestEarlierSlotUC.NewUseCase(
		bookingRepository,
		earlierRepository,
		cfg.Booking.EarlierRequestTTL(),
		location,
		log,
	)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	recurringSvc := recurringService.NewService(recurringRepository, createBookingUseCase, txMgr, log)
	groupSvc := groupsService.NewService(groupRepository, cancelBookingUseCase, txMgr, log)
	catalogSvc := catalogService.NewService(catalogRepository, lockRepository, txMgr, catalogCache, location, log)
	banSvc := bansService.NewService(banRepository, log)

	// Фоновая очистка просроченных запросов на более раннюю запись
	workerCtx, stopWorker := context.WithCancel(context.Background())
	expiryWorker := worker.NewExpiryWorker(earlierWatcher, cfg.Worker.ExpiryInterval(), log)
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		expiryWorker.Run(workerCtx)
	}()
	log.Info("Expiry worker started (interval=%s)", cfg.Worker.ExpiryInterval())

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailabilityUseCase, location, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getCompanyBookings := getCompanyBookingsHandler.NewHandler(bookingSvc, location, log)
	createRecurringSeries := createRecurringSeriesHandler.NewHandler(createRecurringSeriesUseCase, location, log)
	manageRecurring := manageRecurringHandler.NewHandler(recurringSvc, log)
	createGroupBooking := createGroupBookingHandler.NewHandler(createGroupBookingUseCase, log)
	manageGroup := manageGroupHandler.NewHandler(groupSvc, log)
	requestEarlierSlot := requestEarlierSlotHandler.NewHandler(requestEarlierSlotUseCase, location, log)
	manageCatalog := manageCatalogHandler.NewHandler(catalogSvc, log)
	manageBans := manageBansHandler.NewHandler(banSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	if cfg.RateLimit.Enabled {
		api.Use(middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst).Middleware(log))
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	api.Use(middleware.Auth)

	// ============================================================
	// CUSTOMER ROUTES (любая роль)
	// ============================================================

	// Свободные слоты
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/me", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Регулярные серии ---
	api.HandleFunc("/bookings/recurring", createRecurringSeries.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/recurring/instances/{instanceId:[0-9]+}/materialize", manageRecurring.MaterializeInstance).Methods(http.MethodPost)
	api.HandleFunc("/bookings/recurring/instances/{instanceId:[0-9]+}", manageRecurring.CancelInstance).Methods(http.MethodDelete)
	api.HandleFunc("/bookings/recurring/{seriesId:[0-9]+}", manageRecurring.GetSeries).Methods(http.MethodGet)
	api.HandleFunc("/bookings/recurring/{seriesId:[0-9]+}/materialize", manageRecurring.MaterializeSeries).Methods(http.MethodPost)
	api.HandleFunc("/bookings/recurring/{seriesId:[0-9]+}/status", manageRecurring.UpdateStatus).Methods(http.MethodPatch)

	// --- Групповые записи ---
	api.HandleFunc("/bookings/group", createGroupBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/group/{groupId:[0-9]+}", manageGroup.Get).Methods(http.MethodGet)
	api.HandleFunc("/bookings/group/{groupId:[0-9]+}/participants", manageGroup.AddParticipant).Methods(http.MethodPost)
	api.HandleFunc("/bookings/group/{groupId:[0-9]+}/participants/{participantId:[0-9]+}", manageGroup.CancelParticipant).Methods(http.MethodDelete)

	// --- Запись пораньше ---
	api.HandleFunc("/bookings/earlier-appointment", requestEarlierSlot.Handle).Methods(http.MethodPost)

	// --- Бронирование по ID ---
	api.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId:[0-9]+}", cancelBooking.Handle).Methods(http.MethodDelete)

	// ============================================================
	// ADMIN ROUTES (X-User-Role: admin)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)

	// --- Бронирования ---
	admin.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/bookings", getCompanyBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}", cancelBooking.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/bookings/group/{groupId:[0-9]+}", manageGroup.Cancel).Methods(http.MethodDelete)

	// --- Услуги ---
	admin.HandleFunc("/services", manageCatalog.CreateService).Methods(http.MethodPost)
	admin.HandleFunc("/services/{serviceId:[0-9]+}", manageCatalog.GetService).Methods(http.MethodGet)
	admin.HandleFunc("/services/{serviceId:[0-9]+}", manageCatalog.UpdateService).Methods(http.MethodPatch)

	// --- Мастера, расписания, отсутствия ---
	admin.HandleFunc("/staff", manageCatalog.CreateStaff).Methods(http.MethodPost)
	admin.HandleFunc("/staff", manageCatalog.ListStaff).Methods(http.MethodGet)
	admin.HandleFunc("/staff/{staffId:[0-9]+}/active", manageCatalog.SetStaffActive).Methods(http.MethodPatch)
	admin.HandleFunc("/staff/{staffId:[0-9]+}/schedules", manageCatalog.ListSchedules).Methods(http.MethodGet)
	admin.HandleFunc("/staff/{staffId:[0-9]+}/schedules", manageCatalog.AddSchedule).Methods(http.MethodPost)
	admin.HandleFunc("/schedules/{scheduleId:[0-9]+}", manageCatalog.UpdateSchedule).Methods(http.MethodPut)
	admin.HandleFunc("/schedules/{scheduleId:[0-9]+}", manageCatalog.DeleteSchedule).Methods(http.MethodDelete)
	admin.HandleFunc("/staff/{staffId:[0-9]+}/time-off", manageCatalog.ListTimeOff).Methods(http.MethodGet)
	admin.HandleFunc("/staff/{staffId:[0-9]+}/time-off", manageCatalog.AddTimeOff).Methods(http.MethodPost)
	admin.HandleFunc("/time-off/{timeOffId:[0-9]+}", manageCatalog.DeleteTimeOff).Methods(http.MethodDelete)

	// --- Блокировки клиентов ---
	admin.HandleFunc("/bans", manageBans.Ban).Methods(http.MethodPost)
	admin.HandleFunc("/bans", manageBans.List).Methods(http.MethodGet)
	admin.HandleFunc("/bans/{email}", manageBans.Unban).Methods(http.MethodDelete)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	stopWorker()
	<-workerDone
	log.Info("Expiry worker stopped")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	if err := publisher.Close(); err != nil {
		log.Error("Failed to close event publisher: %v", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
