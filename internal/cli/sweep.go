package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"mikkoo/internal/app"
	"mikkoo/internal/config"
	"mikkoo/internal/database"
	"mikkoo/internal/observability"
	"mikkoo/internal/repository/postgres"
)

func newSweepCmd() *cobra.Command {
	var cronSpec string

	c := &cobra.Command{
		Use:   "sweep",
		Short: "Expire stale pending applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger := observability.NewLogger()
			db := database.NewPostgres(database.PostgresConfig{
				DSN:             cfg.PostgresDSN,
				MaxOpenConns:    cfg.DBMaxOpenConns,
				MaxIdleConns:    cfg.DBMaxIdleConns,
				ConnMaxIdle:     cfg.DBConnMaxIdle,
				ConnMaxLifetime: cfg.DBConnMaxLife,
			})
			defer db.Close()

			sweeper := app.NewSweepService(postgres.NewStore(db), logger)

			if cronSpec == "" {
				count, err := sweeper.Sweep(context.Background(), time.Now().UTC())
				if err != nil {
					return err
				}
				fmt.Fprintf(os.Stdout, "expired %d applications\n", count)
				return nil
			}

			scheduler := cron.New()
			_, err := scheduler.AddFunc(cronSpec, func() {
				count, err := sweeper.Sweep(context.Background(), time.Now().UTC())
				if err != nil {
					logger.Error("sweep run failed", err)
					return
				}
				logger.Info("sweep run finished", "expired", count)
			})
			if err != nil {
				return fmt.Errorf("invalid --cron expression: %w", err)
			}

			scheduler.Start()
			logger.Info("sweep scheduler started", "cron", cronSpec)

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
			<-quit
			<-scheduler.Stop().Done()
			return nil
		},
	}

	c.Flags().StringVar(&cronSpec, "cron", "", "run on a cron schedule instead of once (e.g. \"*/10 * * * *\")")
	return c
}
