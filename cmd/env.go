// Package cmd implements the command-line interface for trakr.
package cmd

import (
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/trakr-cli/trakr/color"
	"github.com/trakr-cli/trakr/config"
	"github.com/trakr-cli/trakr/style"
	"github.com/trakr-cli/trakr/where"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Display only environment variables that are currently defined")
	envCmd.Flags().BoolP("unset-only", "u", false, "Display only environment variables that are currently undefined")

	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
}

// envCmd displays every supported environment variable with its current value.
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Display the supported environment variables",
	Long:  `Display every environment variable the application reads and its current process value.`,
	Run: func(cmd *cobra.Command, args []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set-only"))
		unsetOnly := lo.Must(cmd.Flags().GetBool("unset-only"))

		names := []string{where.EnvConfigPath}
		for _, field := range config.Default {
			names = append(names, field.Env())
		}
		slices.Sort(names)

		for _, env := range names {
			value, present := os.LookupEnv(env)
			if (setOnly && !present) || (unsetOnly && present) {
				continue
			}

			cmd.Print(style.New().Bold(true).Foreground(color.Purple).Render(env))
			cmd.Print("=")

			if present {
				cmd.Println(style.Fg(color.Green)(value))
			} else {
				cmd.Println(style.Fg(color.Red)("unset"))
			}
		}
	},
}
