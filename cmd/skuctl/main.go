package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aioutlet/sku-service/internal/config"
	"github.com/aioutlet/sku-service/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	rootCmd = &cobra.Command{
		Use:           "skuctl",
		Short:         "Operator tool for the sku service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the skuctl version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}

	version = "dev"
)

func main() {
	cfg := config.Load()
	// keep stdout readable for command output
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	log := logger.New(cfg.Log)
	defer log.Sync()

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newPreviewCmd(cfg, log))
	rootCmd.AddCommand(newMigrateCmd(cfg, log))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Error("skuctl failed", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}
