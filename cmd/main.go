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

	cancelSelectionHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/cancel_selection"
	checkAvailabilityHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/check_availability"
	completeCreationHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/complete_creation"
	confirmSelectionHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/confirm_selection"
	createSessionHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/create_session"
	getSessionHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/get_session"
	getTimelineHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/get_timeline"
	selectCheckInHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/select_checkin"
	selectCheckOutHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/select_checkout"
	"github.com/m04kA/HMS-ReservationService/internal/api/middleware"
	"github.com/m04kA/HMS-ReservationService/internal/config"
	reservationRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/reservation"
	roomRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/room"
	bookingServiceClient "github.com/m04kA/HMS-ReservationService/internal/integrations/bookingservice"
	selectionService "github.com/m04kA/HMS-ReservationService/internal/service/selection"
	checkAvailabilityUC "github.com/m04kA/HMS-ReservationService/internal/usecase/check_availability"
	"github.com/m04kA/HMS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/HMS-ReservationService/pkg/logger"
	"github.com/m04kA/HMS-ReservationService/pkg/metrics"
	"github.com/m04kA/HMS-ReservationService/pkg/simpletxmanager"
	"github.com/m04kA/HMS-ReservationService/pkg/txmanager"
	"github.com/m04kA/HMS-ReservationService/pkg/types"
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

	log.Info("Starting HMS-ReservationService...")
	log.Info("Configuration loaded from config.toml")

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

	// Инициализируем клиент сервиса бронирований
	bookingClient := bookingServiceClient.NewClient(
		cfg.BookingService.URL,
		time.Duration(cfg.BookingService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (BookingService=%s timeout=%ds)",
		cfg.BookingService.URL, cfg.BookingService.Timeout)

	// Политика стойки регистрации и якорное время из конфигурации
	policy := frontDeskPolicy(cfg.FrontDesk)
	anchors := selectionService.Anchors{
		CheckInTime:  policy.CheckInTime,
		CheckOutTime: policy.CheckOutTime,
	}
	log.Info("Front desk policy: check-in=%s, check-out=%s, late check-in=%s",
		policy.CheckInTime, policy.CheckOutTime, policy.LateCheckInTime)

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		roomRepository        *roomRepo.Repository
	)

	type TxManager interface {
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		roomRepository = roomRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		roomRepository = roomRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем use cases
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		reservationRepository,
		roomRepository,
		txMgr,
		policy,
		log,
	)

	// Инициализируем реестр сессий выбора
	selectionSvc := selectionService.NewService(
		checkAvailabilityUseCase,
		roomRepository,
		bookingClient,
		anchors,
		log,
	)

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, anchors, log)
	createSession := createSessionHandler.NewHandler(selectionSvc, log)
	getSession := getSessionHandler.NewHandler(selectionSvc, log)
	selectCheckIn := selectCheckInHandler.NewHandler(selectionSvc, log)
	selectCheckOut := selectCheckOutHandler.NewHandler(selectionSvc, log)
	confirmSelection := confirmSelectionHandler.NewHandler(selectionSvc, log)
	completeCreation := completeCreationHandler.NewHandler(selectionSvc, log)
	cancelSelection := cancelSelectionHandler.NewHandler(selectionSvc, log)
	getTimeline := getTimelineHandler.NewHandler(selectionSvc, log)

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
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Проверка доступности номера на кандидатный диапазон
	api.HandleFunc("/rooms/{roomId}/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Сессии выбора дат ---
	// Создание сессии выбора
	protected.HandleFunc("/selection-sessions", createSession.Handle).Methods(http.MethodPost)

	// Текущее состояние сессии
	protected.HandleFunc("/selection-sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)

	// Выбор даты заезда
	protected.HandleFunc("/selection-sessions/{sessionId}/check-in", selectCheckIn.Handle).Methods(http.MethodPost)

	// Выбор даты выезда
	protected.HandleFunc("/selection-sessions/{sessionId}/check-out", selectCheckOut.Handle).Methods(http.MethodPost)

	// Подтверждение выбора
	protected.HandleFunc("/selection-sessions/{sessionId}/confirm", confirmSelection.Handle).Methods(http.MethodPost)

	// Завершение создания бронирования
	protected.HandleFunc("/selection-sessions/{sessionId}/complete", completeCreation.Handle).Methods(http.MethodPost)

	// Отмена выбора
	protected.HandleFunc("/selection-sessions/{sessionId}/cancel", cancelSelection.Handle).Methods(http.MethodPost)

	// Состояние ячеек таймлайна
	protected.HandleFunc("/selection-sessions/{sessionId}/timeline", getTimeline.Handle).Methods(http.MethodGet)

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

// frontDeskPolicy строит политику стойки регистрации из конфигурации
// Пустые поля заменяются стандартными часами отеля
func frontDeskPolicy(cfg config.FrontDeskConfig) checkAvailabilityUC.Policy {
	policy := checkAvailabilityUC.DefaultPolicy()

	if cfg.CheckInTime != "" {
		policy.CheckInTime = mustTimeString(cfg.CheckInTime)
	}
	if cfg.CheckOutTime != "" {
		policy.CheckOutTime = mustTimeString(cfg.CheckOutTime)
	}
	if cfg.LateCheckInTime != "" {
		policy.LateCheckInTime = mustTimeString(cfg.LateCheckInTime)
	}

	return policy
}

// mustTimeString парсит время политики; формат уже проверен при загрузке конфигурации
func mustTimeString(value string) types.TimeString {
	ts, err := types.NewTimeStringFromString(value)
	if err != nil {
		panic(fmt.Sprintf("invalid front desk time %q: %v", value, err))
	}
	return ts
}
