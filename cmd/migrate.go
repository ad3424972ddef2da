package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"catalog-service/internal/database"
	"catalog-service/internal/repository"
	"catalog-service/internal/services"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := InitConfig()
			if err := database.Migrate(ConnectDatabase(cfg)); err != nil {
				return err
			}
			log.Info().Msg("schema up to date")
			return nil
		},
	}
}

func newBackfillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backfill-slugs",
		Short: "Assign slugs to models and variants created before slug support",
		Long: `Fills url_slug, customer_slug, category_slug and color_slug where they
are missing. Existing values are never changed, so the command can be rerun.
Rows that fail are reported and skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			cfg := InitConfig()
			db := ConnectDatabase(cfg)
			if err := database.Migrate(db); err != nil {
				return err
			}
			backfill := services.NewSlugBackfill(repository.NewModelRepository(db), repository.NewVariantRepository(db))
			report, err := backfill.Run(log.Logger.WithContext(ctx))

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if encErr := enc.Encode(report); encErr != nil {
				return encErr
			}
			if err != nil {
				return err
			}
			log.Info().Int("updated", report.Updated).Int("failed", len(report.Errors)).Msg("backfill finished")
			return nil
		},
	}
}
