package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	runUserID   string
	runUserName string
)

// runCmd dispatches a single command line and prints the reply.
var runCmd = &cobra.Command{
	Use:   "run <command line>",
	Short: "Run one Jumpedia command and exit",
	Long: `Run dispatches one command line exactly as a chat message and
prints the reply, for scripting and quick lookups.

  jumpedia run '!list all only loc metro by diff'
  jumpedia run '!info "Snow Dram"'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(getConfig(), getDataDir(), zap.NewNop())
		if err != nil {
			return err
		}
		defer a.close()

		actor := a.bot.Actor(runUserID, runUserName)
		reply := a.bot.Dispatch(context.Background(), "", actor, strings.Join(args, " "))
		if reply == "" {
			return fmt.Errorf("input was not a command (prefix is %q)", getConfig().GetPrefix())
		}
		fmt.Println(reply)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runUserID, "user", "console", "Actor ID for this command")
	runCmd.Flags().StringVar(&runUserName, "name", "Console", "Actor display name for this command")
	rootCmd.AddCommand(runCmd)
}
