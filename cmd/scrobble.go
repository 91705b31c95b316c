// Package cmd implements the command-line interface for trakr.
package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/trakr-cli/trakr/color"
	"github.com/trakr-cli/trakr/history"
	"github.com/trakr-cli/trakr/icon"
	"github.com/trakr-cli/trakr/key"
	"github.com/trakr-cli/trakr/log"
	"github.com/trakr-cli/trakr/style"
	"github.com/trakr-cli/trakr/trakt"
)

func init() {
	rootCmd.AddCommand(scrobbleCmd)

	scrobbleCmd.AddCommand(scrobbleStartCmd)
	scrobbleStartCmd.Flags().StringP("kind", "k", "", "Kind of the item (movie, episode)")
	scrobbleStartCmd.Flags().StringP("episode", "e", "", "Address a single episode as SxE (e.g. 2x08)")
	scrobbleStartCmd.Flags().Float64P("progress", "p", 0, "Playback progress percentage")
	_ = scrobbleStartCmd.RegisterFlagCompletionFunc("kind", completionKinds)

	scrobbleCmd.AddCommand(scrobblePauseCmd)
	scrobblePauseCmd.Flags().StringP("kind", "k", "", "Kind of the item (movie, episode)")
	scrobblePauseCmd.Flags().StringP("episode", "e", "", "Address a single episode as SxE (e.g. 2x08)")
	scrobblePauseCmd.Flags().Float64P("progress", "p", 0, "Playback progress percentage")
	_ = scrobblePauseCmd.RegisterFlagCompletionFunc("kind", completionKinds)

	scrobbleCmd.AddCommand(scrobbleFinishCmd)
	scrobbleFinishCmd.Flags().StringP("kind", "k", "", "Kind of the item (movie, episode)")
	scrobbleFinishCmd.Flags().StringP("episode", "e", "", "Address a single episode as SxE (e.g. 2x08)")
	scrobbleFinishCmd.Flags().Float64P("progress", "p", 0, "Playback progress percentage")
	_ = scrobbleFinishCmd.RegisterFlagCompletionFunc("kind", completionKinds)
}

// scrobbleCmd reports playback state to trakt.tv from the command line, for
// players without a native integration.
var scrobbleCmd = &cobra.Command{
	Use:   "scrobble",
	Short: "Report playback to trakt.tv",
}

var scrobbleStartCmd = &cobra.Command{
	Use:     "start <query>",
	Short:   "Report that playback began or resumed",
	Example: "  trakr scrobble start \"the wire\" --episode 1x01\n  trakr scrobble start dune --kind movie --progress 20",
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		media, err := resolveMedia(strings.Join(args, " "), kindFlag(cmd), lo.Must(cmd.Flags().GetString("episode")))
		handleErr(err)

		progress := progressFlag(cmd, media)
		handleErr(trakt.NewScrobbler(media, progress).Start())
		rememberProgress(media, progress)

		fmt.Printf(
			"%s Watching %s %s\n",
			icon.Get(icon.Progress),
			style.Fg(color.Purple)(media.Label()),
			style.Faint(fmt.Sprintf("(%.0f%%)", progress)),
		)
	},
}

var scrobblePauseCmd = &cobra.Command{
	Use:     "pause <query>",
	Short:   "Report that playback paused",
	Example: "  trakr scrobble pause \"the wire\" --episode 1x01 --progress 45",
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		media, err := resolveMedia(strings.Join(args, " "), kindFlag(cmd), lo.Must(cmd.Flags().GetString("episode")))
		handleErr(err)

		progress := progressFlag(cmd, media)
		handleErr(trakt.NewScrobbler(media, progress).Pause())
		rememberProgress(media, progress)

		fmt.Printf(
			"%s Paused %s %s\n",
			icon.Get(icon.Progress),
			style.Fg(color.Purple)(media.Label()),
			style.Faint(fmt.Sprintf("at %.0f%%", progress)),
		)
	},
}

// scrobbleFinishCmd closes a scrobble. Without a query it falls back to the
// most recently saved one, so `trakr scrobble finish` alone wraps up whatever
// was playing last.
var scrobbleFinishCmd = &cobra.Command{
	Use:     "finish [query]",
	Short:   "Report that playback ended, marking the item as watched",
	Example: "  trakr scrobble finish\n  trakr scrobble finish \"the wire\" --episode 1x01",
	Args:    cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var media trakt.Media

		if len(args) == 0 {
			record, err := history.Latest()
			handleErr(err)
			if record == nil {
				handleErr(errors.New("no saved scrobble to finish, pass a query"))
			}
			media = record.Media()
		} else {
			found, err := resolveMedia(strings.Join(args, " "), kindFlag(cmd), lo.Must(cmd.Flags().GetString("episode")))
			handleErr(err)
			media = found
		}

		handleErr(trakt.NewScrobbler(media, progressFlag(cmd, media)).Finish())
		if err := history.Forget(media); err != nil {
			log.Error(err)
		}

		fmt.Printf(
			"%s Scrobbled %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(media.Label()),
		)
	},
}

// progressFlag reads --progress, falling back to the locally saved progress of
// the media when the flag was not given.
func progressFlag(cmd *cobra.Command, media trakt.Media) float64 {
	if cmd.Flags().Changed("progress") {
		return lo.Must(cmd.Flags().GetFloat64("progress"))
	}
	return savedProgress(media)
}

// savedProgress looks the media up in the local scrobble history.
func savedProgress(media trakt.Media) float64 {
	saved, err := history.Get()
	if err != nil {
		return 0
	}

	for _, record := range saved {
		if record.Label == media.Label() && record.Kind == media.Kind() {
			return record.Progress
		}
	}

	return 0
}

// rememberProgress persists playback position between invocations, so pause
// and finish pick up where the last report left off.
func rememberProgress(media trakt.Media, progress float64) {
	if !viper.GetBool(key.ScrobbleSaveProgress) {
		return
	}
	if err := history.Save(media, progress); err != nil {
		log.Error(err)
	}
}
