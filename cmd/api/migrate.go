package main

import (
	"fmt"
	"invoicing/internal/app"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func migrateCmd(rt *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create tables and seed the settings and sequence rows",
		Long: `Create the tables of the configured storage driver and seed the
singleton rows. Relational drivers run AutoMigrate; dynamodb creates the
missing tables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.OpenStore(cmd.Context(), rt.cfg.Storage, rt.logger)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Migrate(cmd.Context()); err != nil {
				return err
			}
			rt.logger.Info("migration complete", zap.String("storage", rt.cfg.Storage.Driver))
			fmt.Fprintln(cmd.OutOrStdout(), "migration complete")
			return nil
		},
	}
}
