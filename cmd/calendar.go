// Package cmd implements the command-line interface for trakr.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/trakr-cli/trakr/color"
	"github.com/trakr-cli/trakr/icon"
	"github.com/trakr-cli/trakr/key"
	"github.com/trakr-cli/trakr/style"
	"github.com/trakr-cli/trakr/trakt"
)

// calendarSections maps the positional argument onto the calendar endpoints.
var calendarSections = []string{"shows", "new", "premieres", "movies", "dvd"}

func init() {
	rootCmd.AddCommand(calendarCmd)

	calendarCmd.Flags().BoolP("my", "m", false, "Limit the calendar to items you watch (requires authentication)")
	calendarCmd.Flags().StringP("date", "d", "", "Start date of the window as Y-m-d (defaults to today)")
	calendarCmd.Flags().IntP("days", "n", 0, "Number of days the window covers")

	calendarCmd.SetOut(os.Stdout)
}

// calendarCmd lists upcoming airings, premieres and releases.
var calendarCmd = &cobra.Command{
	Use:       "calendar [shows|new|premieres|movies|dvd]",
	Short:     "List upcoming episodes, premieres and movie releases",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: calendarSections,
	Example:   "  trakr calendar\n  trakr calendar premieres --my --days 14\n  trakr calendar movies --date 2026-09-01",
	Run: func(cmd *cobra.Command, args []string) {
		section := "shows"
		if len(args) > 0 {
			section = args[0]
		}

		span := trakt.Span{Days: lo.Must(cmd.Flags().GetInt("days"))}
		if span.Days <= 0 {
			span.Days = viper.GetInt(key.CalendarDefaultDays)
		}

		if date := lo.Must(cmd.Flags().GetString("date")); date != "" {
			start, err := time.Parse("2006-01-02", date)
			if err != nil {
				handleErr(fmt.Errorf("invalid --date %q, expected Y-m-d: %w", date, err))
			}
			span.Start = start
		}

		my := lo.Must(cmd.Flags().GetBool("my")) || viper.GetBool(key.CalendarPersonal)

		switch section {
		case "shows":
			printEpisodeCalendar(cmd, lo.Ternary(my, trakt.MyShowCalendar, trakt.ShowCalendar), span)
		case "new":
			printEpisodeCalendar(cmd, lo.Ternary(my, trakt.MyPremiereCalendar, trakt.PremiereCalendar), span)
		case "premieres":
			printEpisodeCalendar(cmd, lo.Ternary(my, trakt.MySeasonPremiereCalendar, trakt.SeasonPremiereCalendar), span)
		case "movies":
			printMovieCalendar(cmd, lo.Ternary(my, trakt.MyMovieCalendar, trakt.MovieCalendar), span)
		case "dvd":
			printMovieCalendar(cmd, lo.Ternary(my, trakt.MyDVDCalendar, trakt.DVDCalendar), span)
		default:
			handleErr(fmt.Errorf("unknown calendar section %q, expected one of %v", section, calendarSections))
		}
	},
}

// printEpisodeCalendar renders a TV calendar, one line per airing, in the
// ascending air-time order the fetch already guarantees.
func printEpisodeCalendar(cmd *cobra.Command, fetch func(trakt.Span) ([]*trakt.Show, error), span trakt.Span) {
	shows, err := fetch(span)
	handleErr(err)

	if len(shows) == 0 {
		cmd.Printf("%s Nothing airing in this window\n", icon.Get(icon.Calendar))
		return
	}

	for _, show := range shows {
		for _, season := range show.Seasons {
			for _, episode := range season.Episodes {
				code := fmt.Sprintf("%dx%02d", episode.Season, episode.Number)
				cmd.Printf(
					"%s  %s %s %s\n",
					style.Faint(episode.AiredAt.Local().Format("Mon 02 Jan 15:04")),
					style.Fg(color.Purple)(show.Title),
					style.Fg(color.Yellow)(code),
					episode.Title,
				)
			}
		}
	}
}

// printMovieCalendar renders a movie calendar, one line per release.
func printMovieCalendar(cmd *cobra.Command, fetch func(trakt.Span) ([]*trakt.Movie, error), span trakt.Span) {
	movies, err := fetch(span)
	handleErr(err)

	if len(movies) == 0 {
		cmd.Printf("%s No releases in this window\n", icon.Get(icon.Calendar))
		return
	}

	for _, movie := range movies {
		cmd.Printf(
			"%s  %s\n",
			style.Faint(movie.Released),
			style.Fg(color.Purple)(movie.Label()),
		)
	}
}
