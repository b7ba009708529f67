package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jumpedia/jumpedia/internal/catalog"
	"github.com/jumpedia/jumpedia/internal/config"
	"github.com/jumpedia/jumpedia/internal/ui"
)

// initCmd creates a new data directory and, if missing, a config file.
var initCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Create a new Jumpedia data directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}

		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
		if err := os.MkdirAll(filepath.Join(dataDir, catalog.SnapshotDir), 0755); err != nil {
			return fmt.Errorf("failed to create snapshot directory: %w", err)
		}

		configPath, err := config.CreateDefault()
		if err != nil {
			return err
		}

		fmt.Println(ui.Successf("Data directory ready: %s", dataDir))
		fmt.Println(ui.Hint(fmt.Sprintf("Set data_dir = %q in %s, then run 'jumpedia serve'.", dataDir, configPath)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
