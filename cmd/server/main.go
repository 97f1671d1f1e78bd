package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/autonear/autonear-backend/config"
	"github.com/autonear/autonear-backend/internal/app/controller"
	"github.com/autonear/autonear-backend/internal/app/repository"
	"github.com/autonear/autonear-backend/internal/app/service"
	"github.com/autonear/autonear-backend/internal/db"
	"github.com/autonear/autonear-backend/internal/middleware"
	"github.com/autonear/autonear-backend/internal/router"
	"github.com/autonear/autonear-backend/internal/scheduler"
	"github.com/autonear/autonear-backend/internal/storage"
	ws "github.com/autonear/autonear-backend/internal/websocket"
	"github.com/autonear/autonear-backend/pkg/logger"
	"github.com/autonear/autonear-backend/pkg/redis"
	"github.com/autonear/autonear-backend/pkg/util"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	logFormat := "json"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      logFormat,
		EnableColor: true,
	})

	logger.Info("Starting AutoNear Backend Server", logger.Fields{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(cfg.Database.SeedOnMigrate); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis is optional: without it tokens cannot be revoked and chat stays
	// on this instance.
	if cfg.Redis.Enabled() {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, continuing without it", logger.Fields{
				"error": err.Error(),
			})
		}
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Realtime chat
	hub := ws.NewHub()
	var publisher service.ChatPublisher = hub
	if client := redis.GetClient(); client != nil {
		relay := ws.NewRedisRelay(client, hub)
		go relay.Run(ctx)
		publisher = relay
	}

	// Initialize repositories
	conn := db.GetDB()
	userRepo := repository.NewUserRepository(conn)
	shopRepo := repository.NewShopRepository(conn)
	requestRepo := repository.NewServiceRequestRepository(conn)
	shopRequestRepo := repository.NewShopRequestRepository(conn)
	chatRepo := repository.NewChatRepository(conn)
	grantRepo := repository.NewAdminGrantRepository(conn)
	resetRepo := repository.NewPasswordResetRepository(conn)
	verificationRepo := repository.NewEmailVerificationRepository(conn)

	// Account mail. config.Load refuses production without SMTP.
	var notifier service.Notifier
	if cfg.Mail.Enabled() {
		mailer := util.NewSMTPMailer(cfg.Mail.SMTPHost, cfg.Mail.SMTPPort, cfg.Mail.SMTPUsername, cfg.Mail.SMTPPassword, cfg.Mail.From)
		notifier = service.NewMailNotifier(mailer, cfg.Mail.FrontendURL)
	} else {
		logger.Warn("SMTP not configured; reset links and verification codes will not be delivered")
		notifier = service.LogNotifier{}
	}

	// Initialize services
	access := service.NewAccessService(cfg.Admin.Emails, grantRepo)
	authService := service.NewAuthService(
		userRepo,
		access,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	resetService := service.NewPasswordResetService(resetRepo, userRepo, notifier)
	verificationService := service.NewEmailVerificationService(verificationRepo, userRepo, notifier)
	shopService := service.NewShopService(shopRepo)
	requestService := service.NewServiceRequestService(requestRepo, shopRepo)
	shopRequestService := service.NewShopRequestService(conn, shopRequestRepo, shopRepo)
	chatService := service.NewChatService(chatRepo, requestRepo, access, publisher)
	geocodeService := service.NewGeocodeService(util.NewReverseGeocoder(cfg.Geocode.ReverseURL, cfg.Geocode.Timeout))

	var uploadService service.UploadService
	if cfg.S3.Enabled() {
		s3Storage, err := storage.NewS3Storage(ctx, &cfg.S3)
		if err != nil {
			logger.Warn("S3 storage unavailable, image uploads disabled", logger.Fields{
				"error": err.Error(),
			})
			uploadService = service.NewUploadService(nil, shopService)
		} else {
			uploadService = service.NewUploadService(s3Storage, shopService)
		}
	} else {
		uploadService = service.NewUploadService(nil, shopService)
	}

	hub.SetAuthorizer(chatService)
	go hub.Run(ctx)

	// Background jobs
	purgeScheduler := scheduler.NewTokenPurgeScheduler(cfg.Jobs.ResetPurgeSchedule,
		scheduler.PurgeJob{Name: "password_resets", Purger: resetService},
		scheduler.PurgeJob{Name: "email_verifications", Purger: verificationService},
	)
	if err := purgeScheduler.Start(); err != nil {
		logger.Fatal("Failed to start token purge scheduler", err)
	}
	defer purgeScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		router.Controllers{
			Auth:           controller.NewAuthController(authService, resetService, verificationService),
			Shop:           controller.NewShopController(shopService),
			ServiceRequest: controller.NewServiceRequestController(requestService),
			ShopRequest:    controller.NewShopRequestController(shopRequestService),
			Admin:          controller.NewAdminController(access, requestService, shopRequestService),
			Chat:           controller.NewChatController(chatService, hub, cfg.CORS.AllowedOrigins),
			Geocode:        controller.NewGeocodeController(geocodeService),
			Upload:         controller.NewUploadController(uploadService),
		},
		middleware.NewAuthMiddleware(cfg.JWT.Secret),
		access,
		cfg,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           r.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server started successfully", logger.Fields{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}

	logger.Info("Server stopped successfully")
}
