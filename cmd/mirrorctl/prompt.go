package main

import (
	"fmt"

	"github.com/ashureev/mirror/internal/mirror"
	"github.com/spf13/cobra"
)

var promptTexts = map[string]string{
	"system":   mirror.SystemPrompt,
	"crisis":   mirror.CrisisMessage,
	"fallback": mirror.FallbackMessage,
}

var promptCmd = &cobra.Command{
	Use:       "prompt [system|crisis|fallback]",
	Short:     "Print one of the fixed instruction or reply texts",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"system", "crisis", "fallback"},
	RunE: func(cmd *cobra.Command, args []string) error {
		text, ok := promptTexts[args[0]]
		if !ok {
			return fmt.Errorf("unknown prompt %q", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(promptCmd)
}
