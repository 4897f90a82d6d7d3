package main

import (
	"fmt"

	"github.com/ashureev/mirror/internal/mirror"
	"github.com/spf13/cobra"
)

var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and prompt revision",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mirrorctl %s (prompt %s)\n", version, mirror.PromptVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
