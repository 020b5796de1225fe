package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	blockedDatesHandler "github.com/m04kA/SMC-RidingSchoolService/internal/api/handlers/blocked_dates"
	createBookingHandler "github.com/m04kA/SMC-RidingSchoolService/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/SMC-RidingSchoolService/internal/api/handlers/delete_booking"
	getBookingHandler "github.com/m04kA/SMC-RidingSchoolService/internal/api/handlers/get_booking"
	getDayBookingsHandler "github.com/m04kA/SMC-RidingSchoolService/internal/api/handlers/get_day_bookings"
	getFreeSlotsHandler "github.com/m04kA/SMC-RidingSchoolService/internal/api/handlers/get_free_slots"
	getScheduleConfigHandler "github.com/m04kA/SMC-RidingSchoolService/internal/api/handlers/get_schedule_config"
	getWeekBookingsHandler "github.com/m04kA/SMC-RidingSchoolService/internal/api/handlers/get_week_bookings"
	lunchOverrideHandler "github.com/m04kA/SMC-RidingSchoolService/internal/api/handlers/lunch_override"
	moveBookingHandler "github.com/m04kA/SMC-RidingSchoolService/internal/api/handlers/move_booking"
	stopRecurrenceHandler "github.com/m04kA/SMC-RidingSchoolService/internal/api/handlers/stop_recurrence"
	updateAssignmentsHandler "github.com/m04kA/SMC-RidingSchoolService/internal/api/handlers/update_assignments"
	updateScheduleConfigHandler "github.com/m04kA/SMC-RidingSchoolService/internal/api/handlers/update_schedule_config"
	"github.com/m04kA/SMC-RidingSchoolService/internal/api/middleware"
	"github.com/m04kA/SMC-RidingSchoolService/internal/config"
	activityRepo "github.com/m04kA/SMC-RidingSchoolService/internal/infra/storage/activity"
	bookingRepo "github.com/m04kA/SMC-RidingSchoolService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/SMC-RidingSchoolService/internal/infra/storage/schedule"
	bookingsService "github.com/m04kA/SMC-RidingSchoolService/internal/service/bookings"
	scheduleService "github.com/m04kA/SMC-RidingSchoolService/internal/service/schedule"
	createBookingUC "github.com/m04kA/SMC-RidingSchoolService/internal/usecase/create_booking"
	getFreeSlotsUC "github.com/m04kA/SMC-RidingSchoolService/internal/usecase/get_free_slots"
	"github.com/m04kA/SMC-RidingSchoolService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RidingSchoolService/pkg/logger"
	"github.com/m04kA/SMC-RidingSchoolService/pkg/metrics"
	"github.com/m04kA/SMC-RidingSchoolService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-RidingSchoolService/pkg/txmanager"
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

	log.Info("Starting SMC-RidingSchoolService...")
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
		bookingRepository  *bookingRepo.Repository
		scheduleRepository *scheduleRepo.Repository
		activityRepository *activityRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		activityRepository = activityRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		activityRepository = activityRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Проверяем сохраненные настройки календаря на старте: сервис не должен
	// подниматься с настройками, нарушающими инварианты
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 5*time.Second)
	savedConfig, err := scheduleRepository.GetConfig(startupCtx)
	cancelStartup()
	switch {
	case err == nil:
		if err := savedConfig.Validate(); err != nil {
			log.Fatal("Stored calendar config is invalid: %v", err)
		}
		log.Info("Calendar config loaded: work=%s-%s, lunch=%s+%dm, buffer=%dm",
			savedConfig.WorkWindow.Start, savedConfig.WorkWindow.End,
			savedConfig.LunchStart, savedConfig.LunchDurationMinutes, savedConfig.BufferMinutes)
	case errors.Is(err, scheduleRepo.ErrConfigNotFound):
		log.Info("No calendar config stored, defaults will be used")
	default:
		log.Fatal("Failed to load calendar config: %v", err)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		scheduleRepository,
		activityRepository,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		activityRepository,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		activityRepository,
		txMgr,
		log,
	)

	getFreeSlotsUseCase := getFreeSlotsUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		log,
	)

	// Инициализируем handlers
	getFreeSlots := getFreeSlotsHandler.NewHandler(getFreeSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getDayBookings := getDayBookingsHandler.NewHandler(bookingSvc, log)
	getWeekBookings := getWeekBookingsHandler.NewHandler(bookingSvc, log)
	moveBooking := moveBookingHandler.NewHandler(bookingSvc, log)
	updateAssignments := updateAssignmentsHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	stopRecurrence := stopRecurrenceHandler.NewHandler(bookingSvc, log)
	getScheduleConfig := getScheduleConfigHandler.NewHandler(scheduleSvc, log)
	updateScheduleConfig := updateScheduleConfigHandler.NewHandler(scheduleSvc, log)
	blockedDates := blockedDatesHandler.NewHandler(scheduleSvc, log)
	lunchOverride := lunchOverrideHandler.NewHandler(scheduleSvc, log)

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
	// PUBLIC ROUTES (форма записи на сайте)
	// ============================================================

	// Свободные слоты на дату
	api.HandleFunc("/slots", getFreeSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования (разового или еженедельной серии)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (административный календарь, X-Admin-Key)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AdminAuth(cfg.Auth.AdminKey))

	// --- Бронирования ---
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{bookingId}/move", moveBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/assignments", updateAssignments.Handle).Methods(http.MethodPatch)

	// --- Дневная и недельная сводки календаря ---
	protected.HandleFunc("/days/{date}/bookings", getDayBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/weeks/{year}/{week}/bookings", getWeekBookings.Handle).Methods(http.MethodGet)

	// --- Еженедельные серии ---
	protected.HandleFunc("/recurrences/{repeatGroupId}/stop", stopRecurrence.Handle).Methods(http.MethodPost)

	// --- Настройки календаря ---
	protected.HandleFunc("/schedule/config", getScheduleConfig.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/schedule/config", updateScheduleConfig.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/schedule/blocked-dates", blockedDates.HandleList).Methods(http.MethodGet)
	protected.HandleFunc("/schedule/blocked-dates", blockedDates.HandleBlock).Methods(http.MethodPost)
	protected.HandleFunc("/schedule/blocked-dates/{date}", blockedDates.HandleUnblock).Methods(http.MethodDelete)
	protected.HandleFunc("/schedule/lunch-overrides/{date}", lunchOverride.HandleSet).Methods(http.MethodPut)
	protected.HandleFunc("/schedule/lunch-overrides/{date}", lunchOverride.HandleDelete).Methods(http.MethodDelete)

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
