// Package cmd implements the command-line interface for trakr.
package cmd

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/trakr-cli/trakr/color"
	"github.com/trakr-cli/trakr/icon"
	appsync "github.com/trakr-cli/trakr/internal/sync"
	"github.com/trakr-cli/trakr/style"
	"github.com/trakr-cli/trakr/trakt"
	"github.com/trakr-cli/trakr/util"
)

// episodeCodePattern matches the SxE coordinates accepted by --episode.
var episodeCodePattern = regexp.MustCompile(`^(?P<season>\d+)x(?P<number>\d+)$`)

func completionKinds(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{"movie", "show", "episode", "person"}, cobra.ShellCompDirectiveNoFileComp
}

// kindFlag reads and validates the optional --kind flag. An empty flag leaves
// the kind open so lookups span movies and shows.
func kindFlag(cmd *cobra.Command) trakt.Kind {
	name := lo.Must(cmd.Flags().GetString("kind"))
	if name == "" {
		return ""
	}

	kind, err := trakt.ParseKind(name)
	handleErr(err)
	return kind
}

// atFlag parses the optional --at RFC3339 timestamp. An absent flag returns
// the zero time so each operation applies its own default.
func atFlag(cmd *cobra.Command) time.Time {
	value := lo.Must(cmd.Flags().GetString("at"))
	if value == "" {
		return time.Time{}
	}

	at, err := time.Parse(time.RFC3339, value)
	if err != nil {
		handleErr(fmt.Errorf("invalid --at timestamp %q, expected RFC3339: %w", value, err))
	}
	return at
}

// resolveMedia turns a free-text query into a concrete entity. An episode code
// narrows the lookup to a single episode of the matched show.
func resolveMedia(query string, kind trakt.Kind, episodeCode string) (trakt.Media, error) {
	if episodeCode == "" {
		return trakt.FindClosest(query, kind)
	}

	groups := util.ReGroups(episodeCodePattern, episodeCode)
	if len(groups) == 0 {
		return nil, fmt.Errorf("invalid episode code %q, expected SxE like 2x08", episodeCode)
	}

	season := lo.Must(strconv.Atoi(groups["season"]))
	number := lo.Must(strconv.Atoi(groups["number"]))

	show, err := trakt.FindShow(query)
	if err != nil {
		return nil, err
	}

	seasons, err := show.LoadSeasons()
	if err != nil {
		return nil, err
	}

	for _, s := range seasons {
		if s.Number != season {
			continue
		}
		for _, episode := range s.Episodes {
			if episode.Number == number {
				return episode, nil
			}
		}
	}

	return nil, fmt.Errorf("%s has no episode %dx%02d", show.Title, season, number)
}

// runSync executes a library write, falling back to the offline queue when the
// API cannot be reached. Queued writes replay in the background on the next run.
func runSync(label, note string, fn func() error) {
	err := fn()
	if err == nil {
		fmt.Printf(
			"%s %s %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			note,
			style.Fg(color.Purple)(label),
		)
		return
	}

	var syncErr *trakt.SyncError
	if errors.As(err, &syncErr) {
		if appsync.QueueFailure(label, syncErr.Path, syncErr.Body) == nil {
			fmt.Printf(
				"%s %s queued for background sync\n",
				icon.Get(icon.Queued),
				style.Fg(color.Purple)(label),
			)
			return
		}
	}

	handleErr(err)
}
