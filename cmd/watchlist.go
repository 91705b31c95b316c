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
	rootCmd.AddCommand(watchlistCmd)

	watchlistCmd.AddCommand(watchlistListCmd)
	watchlistListCmd.Flags().StringP("kind", "k", "", "Limit the listing to one kind (movie, show, episode)")
	_ = watchlistListCmd.RegisterFlagCompletionFunc("kind", completionKinds)
	watchlistListCmd.SetOut(os.Stdout)

	watchlistCmd.AddCommand(watchlistAddCmd)
	watchlistAddCmd.Flags().StringP("kind", "k", "", "Kind of the item (movie, show, episode)")
	watchlistAddCmd.Flags().StringP("episode", "e", "", "Address a single episode as SxE (e.g. 2x08)")
	_ = watchlistAddCmd.RegisterFlagCompletionFunc("kind", completionKinds)

	watchlistCmd.AddCommand(watchlistRemoveCmd)
	watchlistRemoveCmd.Flags().StringP("kind", "k", "", "Kind of the item (movie, show, episode)")
	watchlistRemoveCmd.Flags().StringP("episode", "e", "", "Address a single episode as SxE (e.g. 2x08)")
	_ = watchlistRemoveCmd.RegisterFlagCompletionFunc("kind", completionKinds)
}

// watchlistCmd manages the trakt.tv watchlist. Bare invocations list it.
var watchlistCmd = &cobra.Command{
	Use:   "watchlist",
	Short: "List and edit your trakt.tv watchlist",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		watchlistListCmd.Run(watchlistListCmd, args)
	},
}

var watchlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List everything on your watchlist",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		entries, err := trakt.Watchlist(kindFlag(cmd))
		handleErr(err)

		if len(entries) == 0 {
			cmd.Printf("%s Your watchlist is empty\n", icon.Get(icon.Mark))
			return
		}

		for _, entry := range entries {
			media := entry.Media()
			if media == nil {
				continue
			}
			cmd.Printf(
				"%s  %s\n",
				style.Faint(entry.ListedAt.Local().Format("02 Jan 2006")),
				style.Fg(color.Purple)(media.Label()),
			)
		}
	},
}

var watchlistAddCmd = &cobra.Command{
	Use:     "add <query>",
	Short:   "Put a movie, show or episode on your watchlist",
	Example: "  trakr watchlist add \"blade runner\"\n  trakr watchlist add severance --kind show",
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		media, err := resolveMedia(strings.Join(args, " "), kindFlag(cmd), lo.Must(cmd.Flags().GetString("episode")))
		handleErr(err)

		runSync(media.Label(), "Added to watchlist:", func() error {
			return trakt.AddToWatchlist(media)
		})
	},
}

var watchlistRemoveCmd = &cobra.Command{
	Use:   "remove <query>",
	Short: "Take a movie, show or episode off your watchlist",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		media, err := resolveMedia(strings.Join(args, " "), kindFlag(cmd), lo.Must(cmd.Flags().GetString("episode")))
		handleErr(err)

		runSync(media.Label(), "Removed from watchlist:", func() error {
			return trakt.RemoveFromWatchlist(media)
		})
	},
}
