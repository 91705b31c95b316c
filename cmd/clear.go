// Package cmd implements the command-line interface for trakr.
package cmd

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/trakr-cli/trakr/icon"
	"github.com/trakr-cli/trakr/util"
	"github.com/trakr-cli/trakr/where"
)

// clearable names a piece of local state and where it lives.
type clearable struct {
	flag     string
	about    string
	location func() string
}

var clearables = []clearable{
	{"cache", "response and record caches", where.Cache},
	{"history", "saved scrobble progress", where.History},
	{"queue", "pending offline writes", where.Queue},
	{"queries", "search suggestions", where.Queries},
	{"relations", "title resolution bindings", where.Relations},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, c := range clearables {
		clearCmd.Flags().Bool(c.flag, false, "clear "+c.about)
	}
	clearCmd.Flags().BoolP("all", "a", false, "clear everything at once")
}

// clearCmd removes local application state selected by flags.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove cached and persisted application state",
	Run: func(cmd *cobra.Command, args []string) {
		all := lo.Must(cmd.Flags().GetBool("all"))

		selected := 0
		for _, c := range clearables {
			if !all && !lo.Must(cmd.Flags().GetBool(c.flag)) {
				continue
			}

			selected++
			if err := util.Delete(c.location()); err != nil {
				fmt.Printf("%s Nothing to clear for %s\n", icon.Get(icon.Success), c.about)
				continue
			}

			fmt.Printf("%s Cleared %s\n", icon.Get(icon.Success), c.about)
		}

		if selected == 0 {
			handleErr(cmd.Help())
		}
	},
}
