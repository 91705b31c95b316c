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
	rootCmd.AddCommand(collectionCmd)

	collectionCmd.AddCommand(collectionListCmd)
	collectionListCmd.Flags().StringP("kind", "k", "", "Limit the listing to one kind (movie, show)")
	_ = collectionListCmd.RegisterFlagCompletionFunc("kind", completionKinds)
	collectionListCmd.SetOut(os.Stdout)

	collectionCmd.AddCommand(collectionAddCmd)
	collectionAddCmd.Flags().StringP("kind", "k", "", "Kind of the item (movie, show, episode)")
	collectionAddCmd.Flags().StringP("episode", "e", "", "Address a single episode as SxE (e.g. 2x08)")
	collectionAddCmd.Flags().String("at", "", "Collection timestamp as RFC3339 (defaults to now)")
	_ = collectionAddCmd.RegisterFlagCompletionFunc("kind", completionKinds)

	collectionCmd.AddCommand(collectionRemoveCmd)
	collectionRemoveCmd.Flags().StringP("kind", "k", "", "Kind of the item (movie, show, episode)")
	collectionRemoveCmd.Flags().StringP("episode", "e", "", "Address a single episode as SxE (e.g. 2x08)")
	_ = collectionRemoveCmd.RegisterFlagCompletionFunc("kind", completionKinds)
}

// collectionCmd manages the trakt.tv collection. Bare invocations list it.
var collectionCmd = &cobra.Command{
	Use:   "collection",
	Short: "List and edit your trakt.tv collection",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		collectionListCmd.Run(collectionListCmd, args)
	},
}

var collectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your collected movies and shows",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		entries, err := trakt.Collection(kindFlag(cmd))
		handleErr(err)

		if len(entries) == 0 {
			cmd.Printf("%s Your collection is empty\n", icon.Get(icon.Mark))
			return
		}

		for _, entry := range entries {
			media := entry.Media()
			if media == nil {
				continue
			}
			cmd.Printf(
				"%s  %s\n",
				style.Faint(entry.When().Local().Format("02 Jan 2006")),
				style.Fg(color.Purple)(media.Label()),
			)
		}
	},
}

var collectionAddCmd = &cobra.Command{
	Use:     "add <query>",
	Short:   "Add a movie, show or episode to your collection",
	Example: "  trakr collection add \"dune part two\" --kind movie",
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		media, err := resolveMedia(strings.Join(args, " "), kindFlag(cmd), lo.Must(cmd.Flags().GetString("episode")))
		handleErr(err)

		at := atFlag(cmd)
		runSync(media.Label(), "Added to collection:", func() error {
			return trakt.AddToCollection(media, at)
		})
	},
}

var collectionRemoveCmd = &cobra.Command{
	Use:   "remove <query>",
	Short: "Remove a movie, show or episode from your collection",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		media, err := resolveMedia(strings.Join(args, " "), kindFlag(cmd), lo.Must(cmd.Flags().GetString("episode")))
		handleErr(err)

		runSync(media.Label(), "Removed from collection:", func() error {
			return trakt.RemoveFromCollection(media)
		})
	},
}
