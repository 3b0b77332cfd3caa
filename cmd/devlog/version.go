package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/devlog"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of devlog",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("devlog version %s\n", strings.TrimSpace(devlog.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
