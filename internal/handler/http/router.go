package http

import (
	"io"
	"log/slog"

	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/pkg/ratelimit"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterOptions carries the HTTP-facing settings of the app
type RouterOptions struct {
	AllowedOrigins []string
	LogLevel       slog.Level
	AuthLimiter    *ratelimit.Limiter
}

// Handlers groups the route handlers
type Handlers struct {
	Auth         AuthHandler
	Company      CompanyHandler
	User         UserHandler
	Report       ReportHandler
	Notification NotificationHandler
	Dashboard    DashboardHandler
}

// NewLogger builds the ECS-formatted JSON logger shared by the app and the access log
func NewLogger(out io.Writer, app, version, env string, level slog.Level) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)
	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", app),
		slog.String("version", version),
		slog.String("env", env),
	)
}

func NewRouter(logger *slog.Logger, JWTService jwt.Service, opts RouterOptions, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Retry-After"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.RateLimit(opts.AuthLimiter))

			r.Post("/register", h.Auth.Register)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", h.Auth.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", h.Auth.Login)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", h.Auth.LoginWithGoogle)
				})
			})
		})

		// SSE authenticates with a short-lived query token
		r.Get("/notifications/stream", h.Notification.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Get("/company", h.Company.GetMine)

			r.Route("/users", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionViewOwnProfile)).Get("/me", h.User.Me)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.User.List)
					r.Post("/", h.User.Create)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/allowed-dates", h.Report.AllowedDates)
				r.With(middleware.RequirePermission(user.PermissionReportSubmit)).Put("/{date}", h.Report.Submit)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionReportViewOwn))
					r.Get("/me", h.Report.ListMine)
					r.Get("/me/{date}", h.Report.GetMine)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionReportViewAll))
					r.Get("/", h.Report.List)
					r.Get("/{id}", h.Report.GetByID)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionNotificationView))

				r.Get("/", h.Notification.List)
				r.Get("/missed", h.Notification.Missed)
				r.Post("/sync", h.Notification.Sync)
				r.Patch("/seen", h.Notification.MarkAllSeen)
				r.Patch("/{id}/seen", h.Notification.MarkSeen)
				r.Get("/sse-token", h.Notification.GetSSEToken)

				r.With(middleware.RequirePermission(user.PermissionNotificationCleanup)).Post("/cleanup", h.Notification.Cleanup)
			})

			r.With(middleware.AdminOnly, middleware.RequirePermission(user.PermissionDashboardView)).Get("/dashboard", h.Dashboard.GetDashboard)
		})
	})
	return r
}
