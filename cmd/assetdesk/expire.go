package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/assetdesk/assetdesk/internal/config"
	"github.com/assetdesk/assetdesk/internal/db"
	"github.com/assetdesk/assetdesk/internal/logging"
	"github.com/assetdesk/assetdesk/internal/maintenance"
)

// expireRequestsCmd runs one expiry sweep and exits. The serve command runs
// the same sweep on a timer; this is for cron setups and manual pokes.
var expireRequestsCmd = &cobra.Command{
	Use:         "expire-requests",
	Short:       "Expire deletion requests that have sat pending for too long, then exit.",
	Args:        cobra.NoArgs,
	Annotations: structuredLogAnnotations(),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := logging.BootstrapFromEnv(logging.BootstrapOptions{Command: "assetdesk expire-requests"}); err != nil {
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

		runner := maintenance.ExpiryRunner{Store: db.New(pool), MaxAge: cfg.RequestExpiryAfter}
		return runner.RunOnce(ctx)
	},
}
