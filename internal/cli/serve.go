package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jumpedia/jumpedia/internal/bot"
	"github.com/jumpedia/jumpedia/internal/ui"
)

var (
	serveUserID   string
	serveUserName string
	serveVerbose  bool
)

// serveCmd runs an interactive console session: one command per line,
// dispatched exactly like a chat message would be.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an interactive Jumpedia session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newServeLogger(serveVerbose)
		if err != nil {
			return err
		}

		a, err := openApp(getConfig(), getDataDir(), logger)
		if err != nil {
			return err
		}
		defer a.close()

		actor := a.bot.Actor(serveUserID, serveUserName)
		display := ui.NewDisplayContext()
		prefix := getConfig().GetPrefix()

		logger.Info("session started",
			zap.String("data_dir", getDataDir()),
			zap.String("actor", actor.ID))

		fmt.Printf("Jumpedia session as %s. Commands start with %q; type %shelp for help, exit to quit.\n",
			actor.Display(), prefix, prefix)

		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "exit" || line == "quit" {
				break
			}
			if line == "" {
				continue
			}

			reply := a.bot.Dispatch(context.Background(), "", actor, line)
			if reply == "" {
				continue
			}
			printReply(display, reply)
		}

		logger.Info("session ended")
		return scanner.Err()
	},
}

// printReply renders markdown-ish replies nicely on a TTY and falls back
// to plain text everywhere else.
func printReply(display *ui.DisplayContext, reply string) {
	if display.IsTTY && reply == bot.HelpText {
		if rendered, err := ui.RenderMarkdown(reply, display.TermWidth); err == nil {
			fmt.Print(rendered)
			return
		}
	}
	fmt.Println(reply)
}

func newServeLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func init() {
	serveCmd.Flags().StringVar(&serveUserID, "user", "console", "Actor ID for this session")
	serveCmd.Flags().StringVar(&serveUserName, "name", "Console", "Actor display name for this session")
	serveCmd.Flags().BoolVar(&serveVerbose, "verbose", false, "Verbose (development) logging")
	rootCmd.AddCommand(serveCmd)
}
