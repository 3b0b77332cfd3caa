package main

import (
	"encoding/json"
	"os"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the state of the note service and store as JSON",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service := openService()

		if _, err := service.ListSummaries(cmd.Context()); err != nil {
			fatal("Error listing notes", err)
		}

		state := map[string]any{
			service.ComponentType(): service.State(),
		}
		if c, ok := service.Repository().(introspection.Component); ok {
			if i, ok := c.(introspection.Introspectable); ok {
				state[c.ComponentType()] = i.State()
			}
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(state); err != nil {
			fatal("Error encoding JSON", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
