// Command renewhub serves and browses a renewable-energy product portal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/HerbHall/renewhub/internal/config"
	"github.com/HerbHall/renewhub/internal/version"
)

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "renewhub",
		Short: "Renewable energy product portal",
		Long: `RenewHub browses a catalog of renewable energy products, forecasts energy
demand and recommends products.

  renewhub serve    run the JSON API
  renewhub browse   open the terminal client`,
		SilenceUsage: true,
		Version:      version.Short(),
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to configuration file")

	root.AddCommand(newServeCmd(), newBrowseCmd(), newVersionCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// loadSettings reads the configuration named by --config.
func loadSettings() (*config.Config, config.Settings, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, config.Settings{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	settings, err := cfg.Settings()
	if err != nil {
		return nil, config.Settings{}, err
	}
	return cfg, settings, nil
}

// fileLogger logs to path with the production encoder. The terminal client
// owns stdout, so an empty path discards logs instead.
func fileLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
