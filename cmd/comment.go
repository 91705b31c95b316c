// Package cmd implements the command-line interface for trakr.
package cmd

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/trakr-cli/trakr/color"
	"github.com/trakr-cli/trakr/icon"
	"github.com/trakr-cli/trakr/style"
	"github.com/trakr-cli/trakr/trakt"
)

func init() {
	rootCmd.AddCommand(commentCmd)

	commentCmd.Flags().StringP("text", "t", "", "The comment text (at least 5 words)")
	commentCmd.Flags().StringP("kind", "k", "", "Kind of the item (movie, show, episode)")
	commentCmd.Flags().StringP("episode", "e", "", "Comment on a single episode, addressed as SxE")
	commentCmd.Flags().Bool("spoiler", false, "Flag the comment as containing spoilers")
	commentCmd.Flags().Bool("review", false, "Post the comment as a review")

	lo.Must0(commentCmd.MarkFlagRequired("text"))
	_ = commentCmd.RegisterFlagCompletionFunc("kind", completionKinds)
}

// commentCmd posts a comment on the closest match of a query. Long comments
// become reviews on the way out, matching the API's acceptance rule.
var commentCmd = &cobra.Command{
	Use:     "comment <query>",
	Short:   "Comment on a movie, show or episode",
	Example: "  trakr comment \"the wire\" --text \"Best cop show ever put to screen\"\n  trakr comment severance --episode 2x08 --text \"That reveal broke me completely\" --spoiler",
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		text := lo.Must(cmd.Flags().GetString("text"))
		if len(strings.Fields(text)) < 5 {
			handleErr(fmt.Errorf("comments need at least 5 words"))
		}

		media, err := resolveMedia(strings.Join(args, " "), kindFlag(cmd), lo.Must(cmd.Flags().GetString("episode")))
		handleErr(err)

		handleErr(trakt.Comment(
			media,
			text,
			lo.Must(cmd.Flags().GetBool("spoiler")),
			lo.Must(cmd.Flags().GetBool("review")),
		))

		fmt.Printf(
			"%s Comment posted on %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(media.Label()),
		)
	},
}
