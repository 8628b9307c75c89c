package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/cuidarpet/cuidarpet-api/internal/authz"
	"github.com/cuidarpet/cuidarpet-api/internal/config"
	"github.com/cuidarpet/cuidarpet-api/internal/email"
	appointmentHandler "github.com/cuidarpet/cuidarpet-api/internal/handler/appointment"
	authHandler "github.com/cuidarpet/cuidarpet-api/internal/handler/auth"
	clinicHandler "github.com/cuidarpet/cuidarpet-api/internal/handler/clinic"
	employeeHandler "github.com/cuidarpet/cuidarpet-api/internal/handler/employee"
	healthHandler "github.com/cuidarpet/cuidarpet-api/internal/handler/health"
	petHandler "github.com/cuidarpet/cuidarpet-api/internal/handler/pet"
	reviewHandler "github.com/cuidarpet/cuidarpet-api/internal/handler/review"
	serviceHandler "github.com/cuidarpet/cuidarpet-api/internal/handler/service"
	userHandler "github.com/cuidarpet/cuidarpet-api/internal/handler/user"
	"github.com/cuidarpet/cuidarpet-api/internal/middleware"
	"github.com/cuidarpet/cuidarpet-api/internal/repository/postgres"
	"github.com/cuidarpet/cuidarpet-api/internal/router"
	appointmentService "github.com/cuidarpet/cuidarpet-api/internal/service/appointment"
	authService "github.com/cuidarpet/cuidarpet-api/internal/service/auth"
	clinicService "github.com/cuidarpet/cuidarpet-api/internal/service/clinic"
	employeeService "github.com/cuidarpet/cuidarpet-api/internal/service/employee"
	petService "github.com/cuidarpet/cuidarpet-api/internal/service/pet"
	reviewService "github.com/cuidarpet/cuidarpet-api/internal/service/review"
	userService "github.com/cuidarpet/cuidarpet-api/internal/service/user"
	"github.com/cuidarpet/cuidarpet-api/pkg/auth"
	"github.com/cuidarpet/cuidarpet-api/pkg/logger"
	"github.com/cuidarpet/cuidarpet-api/pkg/security"
)

func main() {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	petRepo := postgres.NewPetRepository(db)
	clinicRepo := postgres.NewClinicRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)
	employeeRepo := postgres.NewEmployeeRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	gate := authz.NewGate(postgres.NewOwnershipResolver(db))

	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:      cfg.JWT.Secret,
		Issuer:      cfg.JWT.Issuer,
		Audience:    cfg.JWT.Audience,
		ExpiryHours: cfg.JWT.ExpiryHours,
	})
	hasher := security.NewBcryptHasher(0)

	notifier := email.NewNoopNotifier()
	if cfg.SMTP.Enabled() {
		notifier = email.NewSMTPNotifier(email.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	}

	// Services
	authSvc := authService.NewService(userRepo, jwtSvc, hasher)
	userSvc := userService.NewService(userRepo, gate)
	petSvc := petService.NewService(petRepo, gate)
	clinicSvc := clinicService.NewService(clinicRepo, serviceRepo, gate)
	appointmentSvc := appointmentService.NewService(
		appointmentRepo, petRepo, serviceRepo, clinicRepo, userRepo,
		outboxRepo, gate, notifier, appLogger,
	)
	reviewSvc := reviewService.NewService(reviewRepo, clinicRepo, appointmentRepo, petRepo, gate, appLogger)
	employeeSvc := employeeService.NewService(employeeRepo, clinicRepo, userRepo, gate)

	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)

	routerConfig := router.DefaultConfig()
	routerConfig.Timeout = cfg.Server.Timeout()
	routerConfig.RateLimit = middleware.RateLimiterConfig{
		Rate:  rate.Limit(cfg.Limits.RateLimit),
		Burst: cfg.Limits.RateBurst,
	}

	r := router.New(
		authMiddleware,
		healthHandler.NewHandler(db),
		[]router.Handler{
			authHandler.NewHandler(authSvc),
		},
		[]router.Handler{
			userHandler.NewHandler(userSvc),
			petHandler.NewHandler(petSvc),
			clinicHandler.NewHandler(clinicSvc),
			serviceHandler.NewHandler(clinicSvc),
			appointmentHandler.NewHandler(appointmentSvc),
			reviewHandler.NewHandler(reviewSvc),
			employeeHandler.NewHandler(employeeSvc),
		},
		routerConfig,
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		appLogger.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info("server exited properly")
}
