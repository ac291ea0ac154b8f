// Command-line interface for sitechat: extract pages and ask grounded
// questions from a terminal.
package main

import (
	"fmt"
	"os"

	"sitechat/sitechat/config"
	"sitechat/sitechat/services/scraper"
	"sitechat/sitechat/utils/color"
	"sitechat/sitechat/utils/logging"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.ColorError("error: ")+err.Error())
		os.Exit(1)
	}
}

type rootOptions struct {
	logDir  string
	noColor bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "sitechat",
		Short:         "Extract websites and chat about them",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.logDir != "" {
				logging.InitLogger(opts.logDir)
			} else {
				logging.InitNopLogger()
			}
			if opts.noColor || !term.IsTerminal(int(os.Stdout.Fd())) {
				color.Disable()
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Sync()
		},
	}
	root.PersistentFlags().StringVar(&opts.logDir, "log-dir", "", "write rotating logs to this directory")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable coloured output")

	root.AddCommand(newExtractCmd(), newAskCmd())
	return root
}

// newScraper builds an extractor from the environment, like the server does.
func newScraper(cfg config.Config) (*scraper.Scraper, error) {
	opts, err := scraper.LoadOptions(cfg)
	if err != nil {
		return nil, err
	}
	return scraper.New(opts), nil
}

// terminalWidth is the usable width for rendered markdown, or fallback when
// stdout is not a terminal.
func terminalWidth(fallback int) int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 40 {
		return w - 10
	}
	return fallback
}
