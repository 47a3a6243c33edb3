package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/teamcollab/teamcollab-backend-go/internal/config"
	"github.com/teamcollab/teamcollab-backend-go/internal/domain/analytics"
	appHTTP "github.com/teamcollab/teamcollab-backend-go/internal/handler/http"
	"github.com/teamcollab/teamcollab-backend-go/internal/pkg/clock"
	"github.com/teamcollab/teamcollab-backend-go/internal/pkg/cron"
	"github.com/teamcollab/teamcollab-backend-go/internal/pkg/database"
	"github.com/teamcollab/teamcollab-backend-go/internal/pkg/geoip"
	"github.com/teamcollab/teamcollab-backend-go/internal/pkg/jwt"
	"github.com/teamcollab/teamcollab-backend-go/internal/repository/postgresql"
	analyticsService "github.com/teamcollab/teamcollab-backend-go/internal/service/analytics"
	attendanceService "github.com/teamcollab/teamcollab-backend-go/internal/service/attendance"
	serviceAuth "github.com/teamcollab/teamcollab-backend-go/internal/service/auth"
	slackService "github.com/teamcollab/teamcollab-backend-go/internal/service/slack"
)

const version = "v1.0.0"

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := appHTTP.NewRequestLogger(os.Stdout, parseLevel(cfg.App.LogLevel),
		slog.String("app", "teamcollab"),
		slog.String("version", version),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clk, err := clock.Load(cfg.App.Timezone)
	if err != nil {
		return err
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	visitorRepo := postgresql.NewVisitorRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.CookieSecure)

	authSvc := serviceAuth.NewAuthService(userRepo, jwtService)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, userRepo, clk, cfg.App.Locale)
	commandSvc := slackService.NewCommandService(attendanceSvc, userRepo, clk)

	var locator analytics.Locator
	if cfg.Analytics.GeoLookup {
		locator = geoip.NewClient(cfg.Analytics.GeoBaseURL, cfg.Analytics.GeoTimeout)
	}
	analyticsSvc := analyticsService.NewAnalyticsService(visitorRepo, locator, clk)

	scheduler := cron.NewScheduler()
	if cfg.Cron.Enabled {
		attendanceJobs := cron.NewAttendanceJobs(attendanceRepo, postgresql.NewTransactor(db), clk)
		if err := attendanceJobs.RegisterJobs(scheduler); err != nil {
			return err
		}
		scheduler.Start()
	}
	defer scheduler.Stop()

	router := appHTTP.NewRouter(logger, cfg.CORS.AllowedOrigins, jwtService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc, jwtService),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Slack:      appHTTP.NewSlackHandler(commandSvc),
		Analytics:  appHTTP.NewAnalyticsHandler(analyticsSvc),
		Health:     appHTTP.NewHealthHandler(time.Now(), version),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "port", cfg.App.Port, "timezone", cfg.App.Timezone, "locale", cfg.App.Locale)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
