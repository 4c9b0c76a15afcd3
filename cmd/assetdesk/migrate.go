package main

import (
	"errors"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"github.com/assetdesk/assetdesk/internal/config"
	"github.com/assetdesk/assetdesk/internal/logging"
)

var migrateCmd = &cobra.Command{
	Use:         "migrate",
	Short:       "Apply pending database migrations",
	Annotations: structuredLogAnnotations(),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := logging.BootstrapFromEnv(logging.BootstrapOptions{Command: "assetdesk migrate"}); err != nil {
			return err
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		m, err := migrate.New("file://db/migrations", cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer func() {
			sourceErr, dbErr := m.Close()
			if sourceErr != nil {
				slog.Warn("closing migration source", "error", sourceErr)
			}
			if dbErr != nil {
				slog.Warn("closing migration database", "error", dbErr)
			}
		}()

		if err := m.Up(); err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				slog.Info("schema already up to date")
				return nil
			}
			return err
		}

		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		slog.Info("migrations applied", "version", version, "dirty", dirty)
		return nil
	},
}
