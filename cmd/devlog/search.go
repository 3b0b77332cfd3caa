package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/devlog"
	"github.com/aretw0/devlog/pkg/core"
	"github.com/aretw0/devlog/pkg/pager"
	"github.com/aretw0/devlog/pkg/prompt"
	"github.com/aretw0/devlog/pkg/search"
	"github.com/aretw0/devlog/pkg/terminal"
)

var (
	searchPlain bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search notes and read a match",
	Long: `Search every note for a literal, case-sensitive text. Matches are offered
in a picker; the chosen note opens in a pager (up/down scroll, esc back,
ctrl+c quit). Without a query argument (or with a blank one) the query is
asked for.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		logger := slog.Default()
		service := openService()
		prompter := prompt.New(prompt.WithLogger(logger))

		tty := terminal.Stdio()
		interactive := tty.IsTerminal()
		if interactive {
			// Prompts and the pager change the terminal mode; a signal must
			// bring it back to what it is now.
			if err := tty.Snapshot(); err != nil {
				logger.Debug("terminal snapshot unavailable", "error", err)
			}
			release := terminal.Guard(terminal.RestorerFunc(tty.Reset), logger)
			defer release()
		}

		var query string
		if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
			query = args[0]
		} else {
			q, err := prompter.Ask(ctx, prompt.Question{Label: "Search query:"})
			if errors.Is(err, core.ErrAborted) {
				return
			}
			if err != nil {
				fatal("Error reading query", err)
			}
			query = q
		}

		ids, err := devlog.NewSearch(service, search.WithLogger(logger)).Search(ctx, query)
		if err != nil {
			fatal("Error searching notes", err)
		}
		if len(ids) == 0 {
			fmt.Println("No matching notes found.")
			return
		}

		if searchPlain || !interactive {
			for _, id := range ids {
				fmt.Println(id)
			}
			return
		}

		p := pager.New(prompter, tty, service.ReadContent,
			pager.WithViewportHeight(cfg.ViewportHeight),
			pager.WithLogger(logger),
		)
		if err := p.Run(ctx, ids); err != nil {
			fatal("Error viewing notes", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolVar(&searchPlain, "plain", false, "Print matching note IDs instead of opening the pager")
}
