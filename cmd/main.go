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
	"github.com/robfig/cron/v3"

	assignGuideHandler "github.com/m04kA/TT-ReservationService/internal/api/handlers/assign_guide"
	cancelBookingHandler "github.com/m04kA/TT-ReservationService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/m04kA/TT-ReservationService/internal/api/handlers/check_availability"
	confirmBookingHandler "github.com/m04kA/TT-ReservationService/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/m04kA/TT-ReservationService/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/TT-ReservationService/internal/api/handlers/delete_booking"
	getBookingHandler "github.com/m04kA/TT-ReservationService/internal/api/handlers/get_booking"
	listReservationsHandler "github.com/m04kA/TT-ReservationService/internal/api/handlers/list_reservations"
	processPaymentHandler "github.com/m04kA/TT-ReservationService/internal/api/handlers/process_payment"
	updateStatusHandler "github.com/m04kA/TT-ReservationService/internal/api/handlers/update_status"
	"github.com/m04kA/TT-ReservationService/internal/api/middleware"
	"github.com/m04kA/TT-ReservationService/internal/config"
	customerRepo "github.com/m04kA/TT-ReservationService/internal/infra/storage/customer"
	guideRepo "github.com/m04kA/TT-ReservationService/internal/infra/storage/guide"
	paymentRepo "github.com/m04kA/TT-ReservationService/internal/infra/storage/payment"
	reservationRepo "github.com/m04kA/TT-ReservationService/internal/infra/storage/reservation"
	packageRepo "github.com/m04kA/TT-ReservationService/internal/infra/storage/tourpackage"
	"github.com/m04kA/TT-ReservationService/internal/integrations/mailer"
	paymentsService "github.com/m04kA/TT-ReservationService/internal/service/payments"
	reservationsService "github.com/m04kA/TT-ReservationService/internal/service/reservations"
	checkAvailabilityUC "github.com/m04kA/TT-ReservationService/internal/usecase/check_availability"
	createBookingUC "github.com/m04kA/TT-ReservationService/internal/usecase/create_booking"
	"github.com/m04kA/TT-ReservationService/pkg/logger"
	"github.com/m04kA/TT-ReservationService/pkg/metrics"
	"github.com/m04kA/TT-ReservationService/pkg/txmanager"
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

	log.Info("Starting TT-ReservationService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Инициализируем репозитории
	reservationRepository := reservationRepo.NewRepository(db)
	paymentRepository := paymentRepo.NewRepository(db)
	customerRepository := customerRepo.NewRepository(db)
	guideRepository := guideRepo.NewRepository(db)
	packageRepository := packageRepo.NewRepository(db)

	txMgr := txmanager.NewTransactionManager(db)

	// Инициализируем отправку уведомлений
	var notifier reservationsService.NotificationSink
	if cfg.Notifications.Enabled {
		notifier = mailer.NewClient(cfg.Notifications.FromEmail, cfg.Notifications.FromName, customerRepository, log)
		log.Info("Email notifications enabled (from=%s)", cfg.Notifications.FromEmail)
	} else {
		notifier = mailer.NewLogSink(log)
		log.Info("Email notifications disabled, using log sink")
	}

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		paymentRepository,
		guideRepository,
		notifier,
		txMgr,
		log,
	)
	paymentSvc := paymentsService.NewService(
		paymentRepository,
		reservationRepository,
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		reservationRepository,
		packageRepository,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		reservationRepository,
		customerRepository,
		packageRepository,
		txMgr,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(reservationSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(reservationSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(reservationSvc, log)
	updateStatus := updateStatusHandler.NewHandler(reservationSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(reservationSvc, log)
	assignGuide := assignGuideHandler.NewHandler(reservationSvc, log)
	processPayment := processPaymentHandler.NewHandler(paymentSvc, log)

	// Фоновая задача: просроченные pending платежи помечаются failed
	sweeper := cron.New()
	pendingExpiry := time.Duration(cfg.Payments.PendingExpiryMinutes) * time.Minute
	_, err = sweeper.AddFunc(cfg.Payments.SweepSchedule, func() {
		expired, err := paymentSvc.ExpireStalePending(context.Background(), pendingExpiry)
		if err != nil {
			log.Error("Payment sweep failed: %v", err)
			return
		}
		if expired > 0 {
			log.Info("Payment sweep expired %d stale payments", expired)
		}
	})
	if err != nil {
		log.Fatal("Failed to schedule payment sweep: %v", err)
	}
	sweeper.Start()
	log.Info("Payment expiry sweep scheduled (%s, expiry=%dm)",
		cfg.Payments.SweepSchedule, cfg.Payments.PendingExpiryMinutes)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Проверка доступности пакета
	api.HandleFunc("/availability", checkAvailability.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID и по коду подтверждения
	api.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/code/{code}", getBooking.HandleByCode).Methods(http.MethodGet)

	// Список резерваций с фильтрацией
	api.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)

	// Жизненный цикл резервации
	api.HandleFunc("/bookings/{bookingId:[0-9]+}/status", updateStatus.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId:[0-9]+}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId:[0-9]+}/confirm", confirmBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId:[0-9]+}/guide", assignGuide.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId:[0-9]+}", deleteBooking.Handle).Methods(http.MethodDelete)

	// --- Платежи ---
	api.HandleFunc("/bookings/{bookingId:[0-9]+}/payment", processPayment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId:[0-9]+}/payment", processPayment.HandleGet).Methods(http.MethodGet)

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

	// Останавливаем фоновую задачу, дожидаемся текущего запуска
	sweepCtx := sweeper.Stop()
	<-sweepCtx.Done()
	log.Info("Payment sweep stopped")

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
