// Package cmd implements the command-line interface for trakr.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/trakr-cli/trakr/color"
	"github.com/trakr-cli/trakr/icon"
	"github.com/trakr-cli/trakr/key"
	"github.com/trakr-cli/trakr/query"
	"github.com/trakr-cli/trakr/style"
	"github.com/trakr-cli/trakr/trakt"
	"github.com/trakr-cli/trakr/util"
)

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringP("kind", "k", "", "Comma-separated kinds to search (movie, show, episode, person)")
	searchCmd.Flags().String("id", "", "Look up by an external identifier instead of text")
	searchCmd.Flags().String("id-type", "imdb", "Service the --id belongs to")
	searchCmd.Flags().BoolP("full", "f", false, "Fetch the community rating for each result")

	lo.Must0(searchCmd.RegisterFlagCompletionFunc("kind", completionKinds))
	_ = searchCmd.RegisterFlagCompletionFunc("id-type", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"trakt-movie", "trakt-show", "trakt-episode", "imdb", "tmdb", "tvdb", "tvrage"}, cobra.ShellCompDirectiveNoFileComp
	})

	searchCmd.SetOut(os.Stdout)
}

var searchCmd = &cobra.Command{
	Use:     "search <query>",
	Short:   "Search trakt.tv for movies, shows, episodes and people",
	Example: "  trakr search \"the wire\"\n  trakr search dune --kind movie --full\n  trakr search --id tt0306414 --id-type imdb",
	Args:    cobra.ArbitraryArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && lo.Must(cmd.Flags().GetString("id")) == "" {
			return fmt.Errorf("either a query or --id is required")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		full := lo.Must(cmd.Flags().GetBool("full"))

		if id := lo.Must(cmd.Flags().GetString("id")); id != "" {
			media, err := trakt.SearchByID(id, trakt.IDType(lo.Must(cmd.Flags().GetString("id-type"))))
			handleErr(err)
			printMedia(cmd, media, full)
			return
		}

		text := strings.Join(args, " ")
		media, err := trakt.Search(text, searchKinds(cmd)...)
		handleErr(err)

		if len(media) == 0 {
			cmd.Printf("%s No results for %s\n", icon.Get(icon.Search), style.Bold(text))
			if suggestions := query.SuggestMany(text); len(suggestions) > 0 {
				cmd.Println(style.Faint("Perhaps you meant: " + strings.Join(suggestions, ", ")))
			}
			return
		}

		printMedia(cmd, media, full)
	},
}

// searchKinds parses the comma-separated --kind filter, falling back to the
// configured default search surface.
func searchKinds(cmd *cobra.Command) []trakt.Kind {
	var kinds []trakt.Kind

	if raw := lo.Must(cmd.Flags().GetString("kind")); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			kind, err := trakt.ParseKind(name)
			handleErr(err)
			kinds = append(kinds, kind)
		}
		return kinds
	}

	for _, name := range viper.GetStringSlice(key.SearchDefaultKinds) {
		kind, err := trakt.ParseKind(name)
		if err != nil {
			continue
		}
		kinds = append(kinds, kind)
	}
	return kinds
}

// printMedia renders one line per entity, optionally trailed by its
// community rating.
func printMedia(cmd *cobra.Command, media []trakt.Media, full bool) {
	for _, m := range media {
		if m == nil {
			continue
		}

		line := fmt.Sprintf(
			"%s %s",
			style.Fg(color.Purple)(m.Label()),
			style.Faint("["+string(m.Kind())+"]"),
		)

		if full {
			if stats, ok := trakt.RatingSummary(m).Get(); ok {
				line += fmt.Sprintf(" %s %.1f (%s)", icon.Get(icon.Star), stats.Rating, util.Quantify(stats.Votes, "vote", "votes"))
			}
		}

		cmd.Println(line)
	}
}
