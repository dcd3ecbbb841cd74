package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mikkoo/internal/config"
	"mikkoo/internal/database"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			db := database.NewPostgres(database.PostgresConfig{
				DSN:             cfg.PostgresDSN,
				MaxOpenConns:    cfg.DBMaxOpenConns,
				MaxIdleConns:    cfg.DBMaxIdleConns,
				ConnMaxIdle:     cfg.DBConnMaxIdle,
				ConnMaxLifetime: cfg.DBConnMaxLife,
			})
			defer db.Close()

			if err := database.Migrate(context.Background(), db); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, "schema up to date")
			return nil
		},
	}
}
