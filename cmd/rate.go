// Package cmd implements the command-line interface for trakr.
package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/trakr-cli/trakr/trakt"
)

func init() {
	rootCmd.AddCommand(rateCmd)

	rateCmd.Flags().StringP("kind", "k", "", "Kind of the item to rate (movie, show, episode)")
	rateCmd.Flags().StringP("episode", "e", "", "Rate a single episode, addressed as SxE (e.g. 2x08)")
	rateCmd.Flags().String("at", "", "Rating timestamp as RFC3339 (defaults to now)")

	lo.Must0(rateCmd.RegisterFlagCompletionFunc("kind", completionKinds))
}

// rateCmd submits a rating for the closest match of a query.
var rateCmd = &cobra.Command{
	Use:     "rate <query> <1-10>",
	Short:   "Rate a movie, show or episode",
	Example: "  trakr rate \"the wire\" 10\n  trakr rate severance 9 --episode 2x08\n  trakr rate dune 8 --kind movie",
	Args:    cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		rating, err := strconv.Atoi(args[len(args)-1])
		if err != nil || rating < 1 || rating > 10 {
			handleErr(fmt.Errorf("ratings run from 1 to 10, got %q", args[len(args)-1]))
		}

		query := strings.Join(args[:len(args)-1], " ")
		media, err := resolveMedia(query, kindFlag(cmd), lo.Must(cmd.Flags().GetString("episode")))
		handleErr(err)

		at := atFlag(cmd)
		runSync(media.Label(), fmt.Sprintf("Rated %d/10", rating), func() error {
			return trakt.Rate(media, rating, at)
		})
	},
}
