package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "sponsorship-backend/internal/api/http"
	"sponsorship-backend/internal/config"
	"sponsorship-backend/internal/logger"
	"sponsorship-backend/internal/mail"
	"sponsorship-backend/internal/repository/postgres"
	"sponsorship-backend/internal/security"
	"sponsorship-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Sponsorship Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "self_hosted", cfg.Server.SelfHosted)
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	sessionTokens := security.NewSessionTokenManager(
		cfg.Tokens.Secret,
		time.Duration(cfg.Tokens.AccessExpiryMinutes)*time.Minute,
		time.Duration(cfg.Tokens.RefreshExpiryMinutes)*time.Minute,
	)
	redemptionTokens := security.NewRedemptionTokenCodec(cfg.Tokens.Secret)

	// Initialize Mail Queue
	queueCtx, stopQueue := context.WithCancel(context.Background())
	defer stopQueue()
	sender := mail.NewSendGridSender(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	queue := mail.NewQueue(sender, cfg.Mail.Workers, cfg.Mail.Buffer, cfg.Mail.MaxRetries)
	queue.Start(queueCtx)

	// Initialize Services
	sponsorshipSvc := service.NewSponsorshipService(
		store.SponsorshipRepository,
		store.OrgUserRepository,
		redemptionTokens,
		queue,
		cfg.Server.PublicURL,
		time.Duration(cfg.Tokens.RedemptionTTLDays)*24*time.Hour,
		cfg.Server.SelfHosted,
	)
	authSvc := service.NewAuthService(store.UserRepository, sessionTokens)
	syncSvc := service.NewSyncService(store.OrganizationAPIKeyRepository)

	// Initialize HTTP API
	authHandler := httpapi.NewAuthHandler(authSvc)
	sponsorshipHandler := httpapi.NewSponsorshipHandler(
		sponsorshipSvc,
		syncSvc,
		store.SponsorshipRepository,
		store.OrganizationRepository,
		store.OrgUserRepository,
		cfg.Server.SelfHosted,
	)
	router := httpapi.NewRouter(authHandler, sponsorshipHandler, sessionTokens)

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	stopQueue()
	logger.Info("Server stopped")
}
