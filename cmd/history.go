// Package cmd implements the command-line interface for trakr.
package cmd

import (
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/trakr-cli/trakr/color"
	"github.com/trakr-cli/trakr/icon"
	"github.com/trakr-cli/trakr/style"
	"github.com/trakr-cli/trakr/trakt"
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.AddCommand(historyListCmd)
	historyListCmd.Flags().StringP("kind", "k", "", "Limit the listing to one kind (movie, show, episode)")
	historyListCmd.Flags().IntP("limit", "l", 0, "Maximum number of watch events to list")
	_ = historyListCmd.RegisterFlagCompletionFunc("kind", completionKinds)
	historyListCmd.SetOut(os.Stdout)

	historyCmd.AddCommand(historyAddCmd)
	historyAddCmd.Flags().StringP("kind", "k", "", "Kind of the item (movie, show, episode)")
	historyAddCmd.Flags().StringP("episode", "e", "", "Address a single episode as SxE (e.g. 2x08)")
	historyAddCmd.Flags().String("at", "", "Watch timestamp as RFC3339 (defaults to now)")
	_ = historyAddCmd.RegisterFlagCompletionFunc("kind", completionKinds)

	historyCmd.AddCommand(historyRemoveCmd)
	historyRemoveCmd.Flags().StringP("kind", "k", "", "Kind of the item (movie, show, episode)")
	historyRemoveCmd.Flags().StringP("episode", "e", "", "Address a single episode as SxE (e.g. 2x08)")
	_ = historyRemoveCmd.RegisterFlagCompletionFunc("kind", completionKinds)
}

// historyCmd manages the trakt.tv watch history. Bare invocations list it.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List and edit your trakt.tv watch history",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		historyListCmd.Run(historyListCmd, args)
	},
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your most recent watch events, newest first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		entries, err := trakt.History(kindFlag(cmd), lo.Must(cmd.Flags().GetInt("limit")))
		handleErr(err)

		if len(entries) == 0 {
			cmd.Printf("%s Your history is empty\n", icon.Get(icon.Mark))
			return
		}

		for _, entry := range entries {
			media := entry.Media()
			if media == nil {
				continue
			}
			cmd.Printf(
				"%s  %s\n",
				style.Faint(entry.WatchedAt.Local().Format("02 Jan 2006 15:04")),
				style.Fg(color.Purple)(media.Label()),
			)
		}
	},
}

var historyAddCmd = &cobra.Command{
	Use:     "add <query>",
	Short:   "Mark a movie, show or episode as watched",
	Example: "  trakr history add \"the wire\" --episode 1x01\n  trakr history add dune --kind movie --at 2026-08-20T21:00:00Z",
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		media, err := resolveMedia(strings.Join(args, " "), kindFlag(cmd), lo.Must(cmd.Flags().GetString("episode")))
		handleErr(err)

		at := atFlag(cmd)
		runSync(media.Label(), "Marked as watched:", func() error {
			return trakt.AddToHistory(media, at)
		})
	},
}

var historyRemoveCmd = &cobra.Command{
	Use:   "remove <query>",
	Short: "Remove a movie, show or episode from your watch history",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		media, err := resolveMedia(strings.Join(args, " "), kindFlag(cmd), lo.Must(cmd.Flags().GetString("episode")))
		handleErr(err)

		runSync(media.Label(), "Removed from history:", func() error {
			return trakt.RemoveFromHistory(media)
		})
	},
}
