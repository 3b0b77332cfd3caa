package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/devlog/internal/platform"
	"github.com/aretw0/devlog/pkg/compose"
	"github.com/aretw0/devlog/pkg/core"
	"github.com/aretw0/devlog/pkg/git"
	"github.com/aretw0/devlog/pkg/prompt"
	"github.com/aretw0/devlog/pkg/terminal"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Write a new note",
	Long:  `Ask for project, template, title, content and tags, then save a new note.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service := openService()

		if tty := terminal.Stdio(); tty.IsTerminal() {
			if err := tty.Snapshot(); err != nil {
				slog.Debug("terminal snapshot unavailable", "error", err)
			}
			release := terminal.Guard(terminal.RestorerFunc(tty.Reset), slog.Default())
			defer release()
		}

		var project string
		if wd, err := os.Getwd(); err == nil {
			project = git.NewClient(platform.ProjectDir(wd), slog.Default()).ProjectName()
		}

		composer := compose.New(
			prompt.New(prompt.WithLogger(slog.Default())),
			service,
			compose.WithDefaultProject(project),
			compose.WithLogger(slog.Default()),
		)

		note, err := composer.Compose(cmd.Context())
		if errors.Is(err, core.ErrAborted) {
			return
		}
		if err != nil {
			fatal("Error saving note", err)
		}

		fmt.Printf("Note saved to %s\n", service.Locate(note.ID))
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
