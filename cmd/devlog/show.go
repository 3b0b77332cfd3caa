package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		service := openService()

		content, err := service.ReadContent(cmd.Context(), args[0])
		if err != nil {
			fatal("Error reading note", err)
		}
		fmt.Print(content)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
