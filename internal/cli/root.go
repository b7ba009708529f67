// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jumpedia/jumpedia/internal/config"
	"github.com/jumpedia/jumpedia/internal/ui"
)

var (
	// Global flags
	configPath  string
	dataDirFlag string

	// Resolved values
	resolvedDataDir string
	cfg             *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "jumpedia",
	Short: "Jumpedia - the Super Mario Odyssey trick jump catalog",
	Long: `Jumpedia is a catalog of Super Mario Odyssey trick jumps with a
chat-style command interface: query and sort the catalog, claim jumps
with proof, rate them, and curate the catalog through staged batches.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "init", "completion", "help", "version":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = loadGlobalConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		ui.SetAccentColor(cfg.UI.Accent)

		// Resolve data directory: explicit flag > config
		if dataDirFlag != "" {
			resolvedDataDir = dataDirFlag
		} else {
			resolvedDataDir, err = cfg.GetDataDir()
			if err != nil {
				return fmt.Errorf(`no data directory specified

Either:
  1. Use --data-dir /path/to/data
  2. Set data_dir in %s
  3. Run 'jumpedia init /path/to/data' to create one`, config.DefaultPath())
			}
		}

		if _, err := os.Stat(resolvedDataDir); os.IsNotExist(err) {
			return fmt.Errorf("data directory not found: %s\n\nRun 'jumpedia init %s' to create it", resolvedDataDir, resolvedDataDir)
		}

		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "Explicit path to the data directory")
}

// getDataDir returns the resolved data directory.
func getDataDir() string {
	return resolvedDataDir
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	return cfg
}

func loadGlobalConfig() (*config.Config, error) {
	var loadedCfg *config.Config
	var err error
	if strings.TrimSpace(configPath) != "" {
		loadedCfg, err = config.LoadFrom(configPath)
	} else {
		loadedCfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if loadedCfg == nil {
		loadedCfg = &config.Config{}
	}
	return loadedCfg, nil
}
