package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/devlog/pkg/adapters/lifecycle"
	"github.com/aretw0/devlog/pkg/core"
	"github.com/aretw0/devlog/pkg/frontmatter"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print notes as they are created or changed",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		service := openService()

		events, err := service.Watch(ctx)
		if err != nil {
			fatal("Error watching notes", err)
		}

		source := lifecycle.NewSource(events, core.EventCreate, core.EventModify)
		if err := source.Start(ctx); err != nil {
			fatal("Error watching notes", err)
		}
		slog.Info("watching notes", "dir", cfg.NotesDir)

		for ev := range source.Events() {
			e, ok := ev.(core.Event)
			if !ok {
				continue
			}
			line := frontmatter.Placeholder
			if content, err := service.ReadContent(ctx, e.ID); err == nil {
				line = frontmatter.FirstContentLine(content)
			} else {
				slog.Warn("failed to read note", "id", e.ID, "error", err)
			}
			fmt.Printf("%s %s: %s\n", e.Type, e.ID, line)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
