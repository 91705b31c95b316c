// Package cmd implements the command-line interface for trakr.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/trakr-cli/trakr/color"
	"github.com/trakr-cli/trakr/constant"
	"github.com/trakr-cli/trakr/icon"
	"github.com/trakr-cli/trakr/key"
	"github.com/trakr-cli/trakr/log"
	"github.com/trakr-cli/trakr/style"
	"github.com/trakr-cli/trakr/tui"
	"github.com/trakr-cli/trakr/util"
	"github.com/trakr-cli/trakr/version"
	"github.com/trakr-cli/trakr/where"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, square)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().Bool("colored", true, "Colorize the command output")
	lo.Must0(viper.BindPFlag(key.CliColored, rootCmd.PersistentFlags().Lookup("colored")))

	rootCmd.PersistentFlags().Bool("skip-cache", false, "Bypass the on-disk response cache")
	lo.Must0(viper.BindPFlag(key.CacheSkip, rootCmd.PersistentFlags().Lookup("skip-cache")))

	rootCmd.PersistentFlags().Bool("write-logs", false, "Write logs to the localized logs directory")
	lo.Must0(viper.BindPFlag(key.LogsWrite, rootCmd.PersistentFlags().Lookup("write-logs")))

	rootCmd.Flags().BoolP("continue", "c", false, "Resume the most recent saved scrobble")
	rootCmd.Flags().BoolP("calendar", "C", false, "Open the upcoming episodes calendar right away")

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	// Stale temporary files go away on startup.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd defines the entry point for the trakr application.
var rootCmd = &cobra.Command{
	Use:   constant.Trakr,
	Short: "A command-line companion for tracking movies and shows on trakt.tv",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A command-line companion for tracking movies and shows on trakt.tv"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		options := tui.Options{
			Continue: lo.Must(cmd.Flags().GetBool("continue")),
			Calendar: lo.Must(cmd.Flags().GetBool("calendar")),
		}
		handleErr(tui.Run(&options))
	},
}

// Execute runs the root command and routes to the invoked subcommand.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
