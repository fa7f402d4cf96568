package main

import (
	"fmt"
	"strings"

	"github.com/aioutlet/sku-service/internal/config"
	"github.com/aioutlet/sku-service/internal/repository"
	"github.com/aioutlet/sku-service/internal/settings"
	"github.com/aioutlet/sku-service/pkg/redis"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCmd(cfg *config.Config, log *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Upgrade stored sku options to the current layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := redis.NewClient(cmd.Context(), cfg.Redis)
			if err != nil {
				return err
			}
			defer client.Close()

			optionsRepo := repository.NewOptionsRepository(client, cfg.SKU.SettingsKey, log)
			defaults := settings.DefaultsFromConfig(cfg.SKU, log)
			migrator := settings.NewMigrator(optionsRepo, settings.DefaultMigrations(), defaults, log)

			applied, err := migrator.Run(cmd.Context())
			if err != nil {
				return err
			}

			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "sku options already up to date")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied migrations: %s\n", strings.Join(applied, ", "))
			return nil
		},
	}
}
