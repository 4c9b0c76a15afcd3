package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/pgxstore"
	"github.com/alexedwards/scs/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/assetdesk/assetdesk/internal/auth"
	"github.com/assetdesk/assetdesk/internal/config"
	"github.com/assetdesk/assetdesk/internal/db"
	httpapp "github.com/assetdesk/assetdesk/internal/http"
	"github.com/assetdesk/assetdesk/internal/logging"
	"github.com/assetdesk/assetdesk/internal/maintenance"
	"github.com/assetdesk/assetdesk/internal/metrics"
	"github.com/assetdesk/assetdesk/internal/throttle"
)

const sessionLifetime = 12 * time.Hour

var serveCmd = &cobra.Command{
	Use:         "serve",
	Short:       "Run the HTTP server and the maintenance sweep.",
	Args:        cobra.NoArgs,
	Annotations: structuredLogAnnotations(),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	if _, err := logging.BootstrapFromEnv(logging.BootstrapOptions{Command: "assetdesk serve"}); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	queries := db.New(pool)

	if cfg.DevSeedAdmin {
		if err := seedDevAdmin(ctx, queries); err != nil {
			return err
		}
	}

	sessions := newSessionManager(pool, cfg)
	limiter := newFailureLimiter(ctx, cfg)

	srv, err := httpapp.NewEchoServer(cfg, queries, pool, sessions, limiter)
	if err != nil {
		return err
	}

	sweeper := maintenance.Scheduler{
		Runner:   &maintenance.ExpiryRunner{Store: queries, MaxAge: cfg.RequestExpiryAfter},
		Interval: cfg.RequestExpiryInterval,
	}
	go sweeper.Run(ctx)

	_, metricsErrCh := metrics.StartServer(ctx, cfg.MetricsAddr)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", cfg.HTTPAddr)
		errCh <- srv.StartServer(httpServer)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-metricsErrCh:
		return err
	}
}

func newSessionManager(pool *pgxpool.Pool, cfg config.Config) *scs.SessionManager {
	sessions := scs.New()
	sessions.Store = pgxstore.New(pool)
	sessions.Lifetime = sessionLifetime
	sessions.Cookie.Name = "ad_session"
	sessions.Cookie.HttpOnly = true
	sessions.Cookie.Secure = cfg.AuthCookieSecure
	sessions.Cookie.SameSite = http.SameSiteLaxMode
	return sessions
}

// newFailureLimiter connects the optional login throttle. Sign-in works
// without it, so a missing or unreachable Redis degrades to unthrottled
// logins rather than a dead service.
func newFailureLimiter(ctx context.Context, cfg config.Config) *throttle.FailureLimiter {
	if cfg.LoginThrottleRedisAddr == "" {
		return nil
	}
	client, err := throttle.Connect(ctx, cfg.LoginThrottleRedisAddr)
	if err != nil {
		slog.Warn("login throttle disabled", "addr", cfg.LoginThrottleRedisAddr, "error", err)
		return nil
	}
	return &throttle.FailureLimiter{
		Client:      client,
		MaxFailures: cfg.LoginThrottleMaxFailures,
		Window:      cfg.LoginThrottleWindow,
	}
}

// seedDevAdmin creates a throwaway admin account for local development when
// DEV_SEED_ADMIN is set and no admin exists yet.
func seedDevAdmin(ctx context.Context, q *db.Queries) error {
	const (
		devEmail    = "admin@example.com"
		devPassword = "admin-dev-password"
	)

	count, err := q.CountAuthAdmins(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if _, err := q.GetAuthUserByEmail(ctx, devEmail); err == nil {
		return nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(devPassword)
	if err != nil {
		return err
	}
	if _, err := q.CreateAuthUser(ctx, db.CreateAuthUserParams{
		Email:        devEmail,
		PasswordHash: hash,
		Role:         auth.RoleAdmin,
		IsActive:     true,
	}); err != nil {
		return err
	}

	slog.Warn("seeded development admin", "email", devEmail, "password", devPassword)
	return nil
}
