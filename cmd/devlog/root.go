package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/devlog"
	"github.com/aretw0/devlog/internal/config"
)

var (
	verbose    bool
	configPath string
	notesDir   string

	cfg config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "devlog",
	Short: "A personal developer log kept as Markdown notes",
	Long: `devlog keeps short Markdown notes about your work, one file per note.
Add a note with "devlog add", list them with "devlog list" and find one
with "devlog search".`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loaded, err := config.Load(configPath)
		if err != nil {
			fatal("Error loading config", err)
		}
		cfg = loaded

		if notesDir != "" {
			dir, err := config.ExpandPath(notesDir)
			if err != nil {
				fatal("Error resolving notes directory", err)
			}
			cfg.NotesDir = dir
		}

		level := cfg.Level()
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// openService opens the note store selected by the configuration.
func openService() *devlog.Service {
	service, err := devlog.New(cfg.NotesDir,
		devlog.WithPattern(cfg.Pattern),
		devlog.WithLogger(slog.Default()),
		devlog.WithWatcherErrorHandler(func(err error) {
			slog.Error("watcher error", "error", err)
		}),
	)
	if err != nil {
		fatal("Error opening notes directory", err)
	}
	return service
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/devlog/config.toml)")
	rootCmd.PersistentFlags().StringVar(&notesDir, "dir", "", "Notes directory (overrides config and $"+config.EnvNotesDir+")")
}
