// Package cmd implements the command-line interface for trakr.
package cmd

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/trakr-cli/trakr/filesystem"
	"github.com/trakr-cli/trakr/inline"
	"github.com/trakr-cli/trakr/query"
	"github.com/trakr-cli/trakr/trakt"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("query", "q", "", "The search query to execute")
	inlineCmd.Flags().String("id", "", "Look up by an external identifier instead of text")
	inlineCmd.Flags().String("id-type", "imdb", "Service the --id belongs to")
	inlineCmd.Flags().StringP("kind", "k", "", "Comma-separated kinds to search (movie, show, episode, person)")
	inlineCmd.Flags().StringP("select", "s", "", "Criteria for selecting a single result from the search response")
	inlineCmd.Flags().StringP("episodes", "e", "", "Criteria for selecting specific episodes of the chosen show")
	inlineCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	inlineCmd.Flags().BoolP("ratings", "r", false, "Fetch and include community rating summaries in the output")
	inlineCmd.Flags().Bool("seasons", false, "Load seasons and episodes for show results")
	inlineCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")

	inlineCmd.RegisterFlagCompletionFunc("query", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
	_ = inlineCmd.RegisterFlagCompletionFunc("kind", completionKinds)
}

// inlineCmd runs a single query end to end for scripts and pipelines.
var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Execute the application in non-interactive, scriptable inline mode",
	Long: `Run a search and print the results without any interactivity, for scripting
and editor integrations.

Result selectors:
  first - first result in the list
  last - last result in the list
  [number] - select a result by index (starting from 0)
  [title] - select the result whose label matches exactly

Episode selectors:
  first - first episode in the list
  last - last episode in the list
  all - all episodes in the list
  [number] - select an episode by index (starting from 0)
  [from]-[to] - select episodes by range
  [season]x[episode] - select one episode by its coordinates
  @[substring]@ - select episodes by title substring

When using the json flag the result selector can be omitted. That way, every
result is included.`,

	Example: "  trakr inline -q \"the wire\" -s first -j\n  trakr inline -q severance --seasons -e 2x08 -j\n  trakr inline --id tt0306414 --id-type imdb -j",
	PreRun: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetString("query")) == "" && lo.Must(cmd.Flags().GetString("id")) == "" {
			handleErr(errors.New("either --query or --id is required"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		var (
			writer io.Writer = os.Stdout
			err    error
		)

		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			writer, err = filesystem.API().Create(output)
			handleErr(err)
		}

		mediaPicker := mo.None[inline.MediaPicker]()
		if selectFlag := lo.Must(cmd.Flags().GetString("select")); selectFlag != "" {
			fn, err := parseSelect(selectFlag)
			handleErr(err)
			mediaPicker = mo.Some(fn)
		}

		episodeFlag := lo.Must(cmd.Flags().GetString("episodes"))
		episodesFilter := mo.None[inline.EpisodesFilter]()
		if episodeFlag != "" {
			fn, err := inline.ParseEpisodesFilter(episodeFlag)
			handleErr(err)
			episodesFilter = mo.Some(fn)
		}

		options := &inline.Options{
			Out:            writer,
			Query:          lo.Must(cmd.Flags().GetString("query")),
			Kinds:          searchKinds(cmd),
			ID:             lo.Must(cmd.Flags().GetString("id")),
			IDType:         trakt.IDType(lo.Must(cmd.Flags().GetString("id-type"))),
			Json:           lo.Must(cmd.Flags().GetBool("json")),
			IncludeRatings: lo.Must(cmd.Flags().GetBool("ratings")),
			Seasons:        lo.Must(cmd.Flags().GetBool("seasons")) || episodeFlag != "",
			MediaPicker:    mediaPicker,
			EpisodesFilter: episodesFilter,
		}

		handleErr(inline.Run(options))
	},
}

// parseSelect maps the --select flag value onto a result picker: the named
// positions, a numeric index, or an exact label match.
func parseSelect(value string) (inline.MediaPicker, error) {
	switch value {
	case "first", "last":
		return inline.ParseMediaPicker(value, "")
	}

	if _, err := strconv.ParseUint(value, 10, 16); err == nil {
		return inline.ParseMediaPicker("index", value)
	}

	return inline.ParseMediaPicker("exact", value)
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)
}

// inlineSchemaCmd generates the JSON schema for structured inline mode output.
var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema for the structured inline mode output",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "movie", "show", "episode", "person", "item", "output":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		schema := reflector.Reflect(&inline.Output{})
		handleErr(json.NewEncoder(os.Stdout).Encode(schema))
	},
}
