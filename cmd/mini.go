// Package cmd implements the command-line interface for trakr.
package cmd

import (
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/trakr-cli/trakr/mini"
)

func init() {
	rootCmd.AddCommand(miniCmd)

	miniCmd.Flags().BoolP("continue", "c", false, "Resume the most recent saved scrobble")
}

// miniCmd starts the reduced prompt-driven interface.
var miniCmd = &cobra.Command{
	Use:   "mini",
	Short: "Launch the application in a lightweight, minimalist terminal interface",
	Long:  `Initialize a streamlined, prompt-driven terminal UI for tracking without the full-screen application.`,
	Run: func(cmd *cobra.Command, args []string) {
		options := mini.Options{
			Continue: lo.Must(cmd.Flags().GetBool("continue")),
		}
		err := mini.Run(&options)

		if err != nil && err.Error() != "interrupt" {
			handleErr(err)
		}
	},
}
