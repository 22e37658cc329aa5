package main

import (
    "errors"

    "github.com/spf13/cobra"

    pg "pincheck/internal/adapters/postgres"
    "pincheck/internal/config"
    "pincheck/internal/logging"
)

func newMigrateCommand() *cobra.Command {
    return &cobra.Command{
        Use:       "migrate [up|down|status|version]",
        Short:     "Run database migrations against DATABASE_URL",
        Args:      cobra.MaximumNArgs(2),
        ValidArgs: []string{"up", "down", "status", "version", "up-to", "down-to", "redo", "reset"},
        RunE: func(cmd *cobra.Command, args []string) error {
            cfg, err := config.Load(v)
            if err != nil {
                return err
            }
            if cfg.DatabaseURL == "" {
                return errors.New("DATABASE_URL is required for migrations")
            }
            log, err := logging.New(cfg.Log, "pincheck-migrate")
            if err != nil {
                return err
            }

            command := "up"
            if len(args) > 0 {
                command, args = args[0], args[1:]
            }
            return pg.Migrate(cmd.Context(), cfg.DatabaseURL, log, command, args...)
        },
    }
}
