package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"go-clinic-backend/config"
	deliveryHttp "go-clinic-backend/internal/delivery/http"
	"go-clinic-backend/internal/delivery/http/handler"
	"go-clinic-backend/internal/delivery/http/middleware"
	"go-clinic-backend/internal/infrastructure/cache"
	"go-clinic-backend/internal/infrastructure/database"
	"go-clinic-backend/internal/repository"
	"go-clinic-backend/internal/service"
	"go-clinic-backend/internal/usecase"
	"go-clinic-backend/pkg/jwt"
	"go-clinic-backend/pkg/validator"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Backend     database.Backend
	DB          *gorm.DB
	Pool        *pgxpool.Pool
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized. The
// data-access backend is resolved exactly once here; only the matching
// connection is opened.
func New() (*App, error) {
	app := &App{}

	setupLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	backend, err := database.ResolveBackend(cfg.App)
	if err != nil {
		return nil, err
	}
	app.Backend = backend
	logrus.Infof("Data-access backend: %s", backend)

	if err := database.RunMigrations(cfg.DB); err != nil {
		return nil, err
	}

	switch backend {
	case database.BackendPgx:
		pool, err := database.NewPgxPool(context.Background(), cfg.DB)
		if err != nil {
			return nil, err
		}
		app.Pool = pool
	case database.BackendGorm:
		db, err := database.NewGormConnection(cfg.DB)
		if err != nil {
			return nil, err
		}
		app.DB = db
	}

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	repos, err := repository.NewRepositories(backend, app.Pool, app.DB)
	if err != nil {
		return nil, err
	}

	app.Server = initializeServer(cfg, repos, redisClient)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer wires usecases, handlers and the router.
func initializeServer(cfg *config.Config, repos *repository.Repositories, redisClient *redis.Client) *http.Server {
	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()
	log := logrus.StandardLogger()

	auditService := service.NewAuditService(log, repos.AuditLog)
	broadcastPublisher := service.NewBroadcastPublisher(log, redisClient)

	authUsecase := usecase.NewAuthUsecase(log, repos.User, jwtService, redisClient, auditService)
	patientUsecase := usecase.NewPatientUsecase(log, cfg.Clinic, repos.Patient, auditService)
	doctorUsecase := usecase.NewDoctorUsecase(log, cfg.Clinic, repos.Doctor, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(log, repos.Appointment, repos.Patient, repos.Doctor, auditService)
	consultationUsecase := usecase.NewConsultationUsecase(log, repos.Consultation, repos.Appointment, repos.Patient, auditService)
	referralUsecase := usecase.NewReferralUsecase(log, cfg.Clinic, repos.Referral, repos.Patient, repos.Doctor, auditService)
	billingUsecase := usecase.NewBillingUsecase(log, cfg.Clinic, repos.Service, repos.Invoice, repos.Patient, auditService)
	documentUsecase := usecase.NewDocumentUsecase(log, cfg.Clinic, repos.DocumentTemplate, repos.Patient, repos.Consultation)
	broadcastUsecase := usecase.NewBroadcastUsecase(log, repos.Broadcast, broadcastPublisher, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(log, repos.AuditLog)

	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	consultationHandler := handler.NewConsultationHandler(consultationUsecase, customValidator)
	referralHandler := handler.NewReferralHandler(referralUsecase, customValidator)
	billingHandler := handler.NewBillingHandler(billingUsecase, customValidator)
	documentHandler := handler.NewDocumentHandler(documentUsecase, customValidator)
	broadcastHandler := handler.NewBroadcastHandler(broadcastUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()
	timeoutMiddleware := middleware.NewTimeoutMiddleware(cfg.App.RequestTimeout)

	router := deliveryHttp.NewRouter(
		authHandler,
		patientHandler,
		doctorHandler,
		appointmentHandler,
		consultationHandler,
		referralHandler,
		billingHandler,
		documentHandler,
		broadcastHandler,
		auditLogHandler,
		authMiddleware,
		corsMiddleware,
		timeoutMiddleware,
	)

	// WriteTimeout sits above the request deadline so handlers finish with
	// a proper error response instead of a severed connection.
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.App.Port),
		Handler:      router.Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.App.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.Pool != nil {
		app.Pool.Close()
	}

	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
