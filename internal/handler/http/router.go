package http

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/teamcollab/teamcollab-backend-go/internal/handler/http/middleware"
	"github.com/teamcollab/teamcollab-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth       AuthHandler
	Attendance AttendanceHandler
	Slack      SlackHandler
	Analytics  AnalyticsHandler
	Health     HealthHandler
}

func NewRouter(logger *slog.Logger, allowedOrigins []string, JWTService jwt.Service, handlers Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RealIP)

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/health", handlers.Health.Health)

	r.Route("/api", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", handlers.Auth.Login)
			r.Post("/logout", handlers.Auth.Logout)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(JWTService))
				r.Get("/me", handlers.Auth.Me)
			})
		})

		// Slack verifies itself upstream; replies are always 200
		r.Post("/slack/commands", handlers.Slack.Command)

		r.Route("/analytics", func(r chi.Router) {
			r.Post("/track", handlers.Analytics.Track)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(JWTService))
				r.Use(middleware.AdminOnly)
				r.Get("/stats", handlers.Analytics.GetStats)
				r.Get("/visitors", handlers.Analytics.GetRecentVisitors)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(middleware.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/checkin", handlers.Attendance.CheckIn)
				r.Post("/checkout", handlers.Attendance.CheckOut)
				r.Get("/today", handlers.Attendance.Today)
				r.Get("/my", handlers.Attendance.GetMyAttendance)
				r.Get("/my/stats", handlers.Attendance.GetMyStats)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/all", handlers.Attendance.ListAll)
					r.Get("/all/stats", handlers.Attendance.GetAllStats)
					r.Get("/all/export", handlers.Attendance.ExportAll)
				})
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"Route not found","error":{"code":"NOT_FOUND"}}`))
	})

	return r
}

// NewRequestLogger builds the ECS-shaped JSON logger shared by the router and the app.
func NewRequestLogger(w io.Writer, level slog.Level, attrs ...slog.Attr) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})
	return slog.New(handler.WithAttrs(attrs))
}
