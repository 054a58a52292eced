package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/pontoeletronico/ponto-reports/internal/config"
	"github.com/pontoeletronico/ponto-reports/internal/domain/payment"
	appHTTP "github.com/pontoeletronico/ponto-reports/internal/handler/http"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/cron"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/database"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/jwt"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/locale"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/pontoapi"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/session"
	"github.com/pontoeletronico/ponto-reports/internal/repository/postgresql"
	"github.com/pontoeletronico/ponto-reports/internal/repository/sqlite"
	"github.com/pontoeletronico/ponto-reports/internal/repository/upstream"
	daterangeService "github.com/pontoeletronico/ponto-reports/internal/service/daterange"
	paymentService "github.com/pontoeletronico/ponto-reports/internal/service/payment"
	summaryService "github.com/pontoeletronico/ponto-reports/internal/service/summary"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).With(
		slog.String("app", "ponto-reports"),
		slog.String("env", cfg.App.Env),
	))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AdminSecret)
	sessions := session.NewManager(JWTService)
	selectorStore := daterangeService.NewSelectorStore(
		cfg.DateRange.ResetDelay,
		cfg.DateRange.IdleTTL,
		daterangeService.WithMaxPerSession(cfg.DateRange.MaxPerSession),
	)
	sessions.OnTeardown(func(s *session.Session) {
		if n := selectorStore.DropSession(s.ID); n > 0 {
			slog.Debug("Date range selectors dropped", "session_id", s.ID, "count", n)
		}
	})

	clientOpts := []pontoapi.Option{pontoapi.WithSessionExpiredHook(sessions.TeardownContext)}
	if cfg.Upstream.Timeout > 0 {
		clientOpts = append(clientOpts, pontoapi.WithTimeout(cfg.Upstream.Timeout))
	}
	client := pontoapi.New(cfg.Upstream.BaseURL, clientOpts...)

	paymentRepo, closeStore, err := openPaymentStore(ctx, cfg, client)
	if err != nil {
		return err
	}
	defer closeStore()

	summarySvc := summaryService.NewSummaryService(
		client,
		summaryService.NewAggregator(),
		cfg.App.Timezone,
		summaryService.WithMonthlyConcurrency(cfg.Summary.MonthlyFetchConcurrency),
	)
	paymentSvc := paymentService.NewPaymentService(
		paymentRepo,
		cfg.App.Timezone,
		paymentService.WithDefaultLocale(locale.Match(cfg.App.Locale)),
	)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigins: cfg.App.AllowedOrigins,
			Env:            cfg.App.Env,
			Version:        version,
			LogLevel:       level,
		},
		JWTService,
		sessions,
		appHTTP.Handlers{
			Auth:      appHTTP.NewAuthHandler(client, sessions),
			Summary:   appHTTP.NewSummaryHandler(summarySvc),
			Payment:   appHTTP.NewPaymentHandler(paymentSvc),
			DateRange: appHTTP.NewDateRangeHandler(selectorStore),
		},
	)

	scheduler := cron.NewScheduler(ctx)
	sweepEvery := cfg.DateRange.IdleTTL / 2
	if sweepEvery < time.Minute {
		sweepEvery = time.Minute
	}
	cron.NewHousekeepingJobs(selectorStore, JWTService).RegisterJobs(scheduler, sweepEvery, time.Hour)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "upstream", cfg.Upstream.BaseURL, "payment_store", cfg.Payment.Store, "timezone", cfg.App.TimezoneName)
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

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("Server stopped")
	return nil
}

func openPaymentStore(ctx context.Context, cfg *config.Config, client *pontoapi.Client) (payment.PaymentRepository, func(), error) {
	switch cfg.Payment.Store {
	case config.PaymentStorePostgres:
		dsn := cfg.DatabaseURL()
		if _, err := database.MigratePostgres(dsn); err != nil {
			return nil, nil, err
		}
		db, err := database.NewPostgreSQLDB(ctx, dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		return postgresql.NewPaymentRepository(db), db.Close, nil

	case config.PaymentStoreSQLite:
		db, err := database.OpenSQLite(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite: %w", err)
		}
		if _, err := database.MigrateSQLite(db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return sqlite.NewPaymentRepository(db), closeSQL(db), nil

	default:
		return upstream.NewPaymentRepository(client), func() {}, nil
	}
}

func closeSQL(db *sql.DB) func() {
	return func() {
		if err := db.Close(); err != nil {
			slog.Warn("Closing sqlite failed", "error", err)
		}
	}
}
