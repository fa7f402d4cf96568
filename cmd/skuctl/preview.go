package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aioutlet/sku-service/internal/config"
	"github.com/aioutlet/sku-service/internal/generator"
	"github.com/aioutlet/sku-service/internal/models"
	"github.com/aioutlet/sku-service/internal/settings"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newPreviewCmd(cfg *config.Config, log *zap.Logger) *cobra.Command {
	var productFile, settingsFile string

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the skus generated for a product snapshot",
		Long: "Reads a product snapshot as JSON (from --product or stdin) and prints the generated skus.\n" +
			"Settings come from --settings, or from the environment defaults.",
		RunE: func(cmd *cobra.Command, args []string) error {
			product, err := readProduct(cmd.InOrStdin(), productFile)
			if err != nil {
				return err
			}

			genCfg := settings.DefaultsFromConfig(cfg.SKU, log)
			if settingsFile != "" {
				provider, err := settings.NewFileProvider(settingsFile, genCfg, log)
				if err != nil {
					return err
				}
				if genCfg, err = provider.Load(cmd.Context()); err != nil {
					return err
				}
			}

			hooks := generator.Hooks{}
			if cfg.SKU.Uppercase {
				hooks = generator.UppercaseHooks()
			}

			result, err := generator.GenerateSKUs(product, genCfg, hooks)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVarP(&productFile, "product", "p", "", "path to a product snapshot JSON file (default stdin)")
	cmd.Flags().StringVarP(&settingsFile, "settings", "s", "", "path to a settings file (yaml, json or toml)")

	return cmd
}

func readProduct(stdin io.Reader, path string) (models.Product, error) {
	var product models.Product

	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return product, fmt.Errorf("failed to read product snapshot: %w", err)
	}

	if err := json.Unmarshal(data, &product); err != nil {
		return product, fmt.Errorf("failed to parse product snapshot: %w", err)
	}
	return product, nil
}
