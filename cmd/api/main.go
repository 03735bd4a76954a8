// @title           Zipo API
// @version         1.0
// @description     Collaborative events with todos, role-based invitations, notifications, and a link shortener.
// @host            localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/aibrid/zipo-server/config"
	"github.com/aibrid/zipo-server/internal/adapters/auth"
	"github.com/aibrid/zipo-server/internal/adapters/email"
	"github.com/aibrid/zipo-server/internal/adapters/storage"
	httpdelivery "github.com/aibrid/zipo-server/internal/delivery/http"
	"github.com/aibrid/zipo-server/internal/delivery/http/controllers"
	"github.com/aibrid/zipo-server/internal/delivery/http/middleware"
	"github.com/aibrid/zipo-server/internal/repository/postgres"
	"github.com/aibrid/zipo-server/internal/services"

	_ "github.com/aibrid/zipo-server/docs"
)

const (
	serviceTimeout = 5 * time.Second
	tokenExpiry    = 7 * 24 * time.Hour
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("ping db: %v", err)
	}
	if err := postgres.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	// Repositories
	eventRepo := postgres.NewEventRepository(db)
	userRepo := postgres.NewUserRepository(db)
	notifRepo := postgres.NewNotificationRepository(db)
	linkRepo := postgres.NewLinkRepository(db)
	statRepo := postgres.NewStatRepository(db)
	txManager := postgres.NewTxManager(db)

	// Adapters
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		},
	})
	if err != nil {
		log.Fatalf("mailer: %v", err)
	}
	renderer := email.NewTemplateRenderer()
	tokenProvider := auth.NewJWTProvider(cfg.JWTSecret, tokenExpiry)
	s3Signer := storage.NewS3Signer(storage.S3Config{
		Region:          cfg.AWSRegion,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
		Bucket:          cfg.S3Bucket,
	})

	// Services
	emailService := services.NewEmailService(mailer, renderer)
	eventService := services.NewEventService(eventRepo, userRepo, txManager, emailService, logger, serviceTimeout)
	userService := services.NewUserService(userRepo, tokenProvider, emailService, logger, serviceTimeout)
	notifService := services.NewNotificationService(notifRepo, userRepo, logger, serviceTimeout)
	linkService := services.NewLinkService(linkRepo, statRepo, logger, serviceTimeout)
	uploadService := services.NewUploadService(s3Signer)

	// Controllers
	eventController := controllers.NewEventController(logger, eventService)
	userController := controllers.NewUserController(logger, userService)
	notifController := controllers.NewNotificationController(logger, notifService)
	linkController := controllers.NewLinkController(logger, linkService)
	uploadController := controllers.NewUploadController(logger, uploadService)

	mux := httpdelivery.NewRouter(eventController, userController, notifController, linkController, uploadController, tokenProvider)
	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "addr", server.Addr, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", "err", err)
	}
	if err := db.Close(); err != nil {
		logger.Error("db close", "err", err)
	}
}
