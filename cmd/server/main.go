package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/auth"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/cache"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/cart"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/config"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/db"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/handlers"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/mail"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/repository"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/service"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/storage"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/telemetry"
	"github.com/Lixing-Zhang/boutique-store/backend/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting boutique store api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"storage_driver", cfg.Database.Driver,
		"log_level", cfg.LogLevel,
	)

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped gracefully")
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx := context.Background()
	checks := map[string]handlers.Check{}

	tracing := telemetry.Config{
		ServiceName:  cfg.Tracing.ServiceName,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		Stdout:       cfg.Tracing.Stdout,
	}
	shutdownTracing, err := telemetry.Setup(ctx, tracing)
	if err != nil {
		return err
	}
	if tracing.Enabled() {
		log.Info("tracing enabled", "otlp_endpoint", cfg.Tracing.OTLPEndpoint, "stdout", cfg.Tracing.Stdout)
	}

	// Initialize repositories
	var repos *repository.Repositories
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		if cfg.Database.RunMigrations {
			log.Info("applying database migrations")
			if err := db.Migrate(cfg.Database.URL); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
		}
		pool, err := db.NewPostgres(ctx, db.PoolConfig{
			URL:      cfg.Database.URL,
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return err
		}
		defer pool.Close()
		repos = repository.NewPostgres(pool)
		checks["database"] = pool.Ping
	default:
		log.Warn("using in-memory storage; data is lost on restart")
		repos = repository.NewInMemory()
	}

	// Cache for carts and settings
	var store cache.Store
	if cfg.Redis.URL != "" {
		rs, err := cache.NewRedisStoreFromURL(ctx, cfg.Redis.URL)
		if err != nil {
			return err
		}
		defer rs.Close()
		store = rs
		checks["redis"] = rs.Ping
	} else {
		store = cache.NewMemoryStore()
	}

	images, err := storage.NewLocalImageStore(storage.LocalOptions{
		Dir:           cfg.Storage.UploadDir,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
		MaxDimension:  cfg.Storage.MaxDimension,
		JPEGQuality:   cfg.Storage.JPEGQuality,
		MaxBytes:      cfg.Storage.MaxUploadSize,
	}, log)
	if err != nil {
		return err
	}

	var mailer mail.Mailer
	if cfg.Mail.Enabled() {
		mailer = mail.NewSMTPMailer(mail.SMTPConfig{
			Host: cfg.Mail.Host,
			Port: cfg.Mail.Port,
			User: cfg.Mail.User,
			Pass: cfg.Mail.Pass,
			From: cfg.Mail.From,
		})
	}

	// Initialize services
	carts := cart.NewStore(store, cfg.Store.CartTTL)
	settingsService := service.NewSettingsService(repos.Settings, store, cfg.Store.SettingsTTL, log)
	productService := service.NewProductService(repos.Products, settingsService, cfg.Store.DefaultWhatsAppPhone, log)
	cartService := service.NewCartService(carts, repos.Products, settingsService, log)
	orderService := service.NewOrderService(repos.Orders, repos.Products, carts, settingsService, mailer, cfg.Store.DefaultWhatsAppPhone, log)
	jwt := auth.NewJWTManager(auth.JWTConfig{
		Issuer: cfg.Auth.JWTIssuer,
		Secret: cfg.Auth.JWTSecret,
		TTL:    cfg.Auth.TokenTTL,
	})
	authService := auth.NewService(repos.Admins, jwt, cfg.Auth.AllowAdminSignUp, log)

	if err := bootstrapAdmin(ctx, cfg.Auth, authService, log); err != nil {
		return err
	}

	// Initialize handlers
	api := handlers.API{
		Health:   handlers.NewHealthHandler(checks, log),
		Products: handlers.NewProductHandler(productService, settingsService, log),
		Cart:     handlers.NewCartHandler(cartService, log),
		Orders:   handlers.NewOrderHandler(orderService, log),
		Slides:   handlers.NewSlideHandler(service.NewSlideService(repos.Slides, log), log),
		Options:  handlers.NewOptionHandler(service.NewOptionService(repos.Options, log), log),
		Settings: handlers.NewSettingsHandler(settingsService, log),
		Reports:  handlers.NewReportHandler(service.NewReportService(repos.Products, repos.Orders), log),
		Auth:     handlers.NewAuthHandler(authService, orderService, log),
		Uploads:  handlers.NewUploadHandler(images, cfg.Storage.MaxUploadSize, log),
	}
	router := handlers.NewRouter(api, handlers.RouterOptions{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		UploadDir:      cfg.Storage.UploadDir,
		RequestTimeout: 60 * time.Second,
		Authenticator:  authService,
	}, log)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr: addr,
		Handler: otelhttp.NewHandler(router, cfg.Tracing.ServiceName,
			otelhttp.WithFilter(func(r *http.Request) bool { return r.URL.Path != "/health" }),
		),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server failed to start: %w", err)
	case <-quit:
	}

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Warn("failed to flush traces", "error", err)
	}
	return nil
}

// bootstrapAdmin creates the configured admin account on first start
func bootstrapAdmin(ctx context.Context, cfg config.AuthConfig, svc *auth.Service, log *slog.Logger) error {
	if cfg.BootstrapEmail == "" || cfg.BootstrapPassword == "" {
		return nil
	}
	_, err := svc.CreateAdmin(ctx, cfg.BootstrapEmail, cfg.BootstrapPassword)
	switch {
	case errors.Is(err, auth.ErrEmailTaken):
		return nil
	case err != nil:
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	log.Info("bootstrap admin created", "email", cfg.BootstrapEmail)
	return nil
}
