package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/daily-report-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/daily-report-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/pkg/oauth"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/pkg/ratelimit"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/cmlabs-hris/daily-report-backend-go/internal/service/auth"
	serviceCompany "github.com/cmlabs-hris/daily-report-backend-go/internal/service/company"
	dashboardService "github.com/cmlabs-hris/daily-report-backend-go/internal/service/dashboard"
	notificationService "github.com/cmlabs-hris/daily-report-backend-go/internal/service/notification"
	reportService "github.com/cmlabs-hris/daily-report-backend-go/internal/service/report"
	serviceUser "github.com/cmlabs-hris/daily-report-backend-go/internal/service/user"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := appHTTP.NewLogger(os.Stdout, cfg.App.Name, cfg.App.Version, cfg.App.Env, cfg.SlogLevel())
	slog.SetDefault(logger)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		ConnectTimeout:  cfg.Database.ConnectTimeout,
	})
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	transactor := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)
	reportRepo := postgresql.NewReportRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, cfg.JWT.SecureCookies)
	if err != nil {
		return err
	}
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	if !cfg.GoogleEnabled() {
		slog.Warn("Google login is not configured")
	}

	rateStore := ratelimit.NewMemoryStore()
	loginGuard := ratelimit.NewLoginGuard(rateStore, cfg.RateLimit.LoginMaxAttempts, cfg.RateLimit.LoginWindow, cfg.RateLimit.LoginLockout)
	authLimiter := ratelimit.NewLimiter(rateStore, cfg.RateLimit.RequestsPerMinute, time.Minute)

	hub := sse.NewHub()

	notificationSvc := notificationService.NewNotificationService(notificationRepo, reportRepo, hub, notificationService.Config{Location: loc})
	reportSvc := reportService.NewReportService(reportRepo, notificationSvc, loc)
	authService := serviceAuth.NewAuthService(transactor, userRepo, companyRepo, JWTService, JWTRepository, loginGuard)
	companyService := serviceCompany.NewCompanyService(companyRepo)
	userService := serviceUser.NewUserService(userRepo)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, loc)

	router := appHTTP.NewRouter(logger, JWTService, appHTTP.RouterOptions{
		AllowedOrigins: cfg.App.AllowedOrigins,
		LogLevel:       cfg.SlogLevel(),
		AuthLimiter:    authLimiter,
	}, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(JWTService, authService, GoogleService, cfg.App.FrontendURL, cfg.JWT.SecureCookies),
		Company:      appHTTP.NewCompanyHandler(companyService),
		User:         appHTTP.NewUserHandler(userService),
		Report:       appHTTP.NewReportHandler(reportSvc),
		Notification: appHTTP.NewNotificationHandler(notificationSvc, JWTService, hub),
		Dashboard:    appHTTP.NewDashboardHandler(dashboardSvc),
	})

	if cfg.Cron.Enabled {
		scheduler := cron.NewScheduler(loc, cfg.Cron.JobTimeout)
		notificationJobs := cron.NewNotificationJobs(companyRepo, userRepo, notificationSvc)
		if err := notificationJobs.RegisterJobs(scheduler, cfg.Cron.SyncSpec, cfg.Cron.CleanupSpec); err != nil {
			return fmt.Errorf("failed to register notification jobs: %w", err)
		}
		maintenanceJobs := cron.NewMaintenanceJobs(JWTRepository, rateStore)
		if err := maintenanceJobs.RegisterJobs(scheduler, cfg.Cron.PurgeSpec); err != nil {
			return fmt.Errorf("failed to register maintenance jobs: %w", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// cancelled on shutdown so open SSE streams return
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "timezone", loc.String())
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
