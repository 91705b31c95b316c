// Package config wires defaults, files and environment into the viper settings engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/trakr-cli/trakr/color"
	"github.com/trakr-cli/trakr/constant"
	"github.com/trakr-cli/trakr/key"
	"github.com/trakr-cli/trakr/style"
)

// Field is one registered configuration setting: its key, its default value
// and the help text commands display for it.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty renders the field's description, value and type colored for the terminal.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable that overrides this field.
func (f *Field) Env() string {
	return strings.ToUpper(constant.Trakr + "_" + EnvKeyReplacer.Replace(f.Key))
}

// MarshalJSON emits the field together with its current value.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

func (f *Field) typeName() string {
	return reflect.TypeOf(f.Value).String()
}

// Default holds every registered field by key.
var Default = make(map[string]Field)

var defaults = []Field{
	{key.TraktClientID, "", "Client ID of your registered Trakt application.\nCreate one at https://trakt.tv/oauth/applications"},
	{key.TraktClientSecret, "", "Client secret of your registered Trakt application.\nRequired for device authentication and token refresh"},
	{key.CalendarDefaultDays, 7, "Number of days a calendar covers when --days is not given"},
	{key.CalendarPersonal, false, "Use the personalized calendars (items you watch) instead of the global ones.\nRequires authentication"},
	{key.MetadataFetchRatings, true, "Fetch community rating summaries for detail views\nResults are cached to not spam the API"},
	{key.ScrobbleSaveProgress, true, "Remember playback progress between scrobble invocations"},
	{key.SearchShowQuerySuggestions, true, "Show query suggestions when searching"},
	{key.SearchDefaultKinds, []string{"movie", "show", "episode", "person"}, "Media kinds searched when --kind is not given"},
	{key.MiniSearchLimit, 20, "Limit of search results to show"},
	{key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)"},
	{key.CacheSkip, false, "Bypass the on-disk response cache"},
	{key.TUIItemSpacing, 1, "Spacing between items in the TUI"},
	{key.TUISearchPromptString, "> ", "Search prompt string to use"},
	{key.TUIShowDistribution, true, "Show the rating distribution histogram in detail views"},
	{key.LogsWrite, false, "Write logs"},
	{key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace"},
	{key.LogsJson, false, "Use json format for logs"},
	{key.CliColored, true, "Enable colored CLI output"},
	{key.CliVersionCheck, true, "Enable automatic version check"},
}

func init() {
	for _, field := range defaults {
		if _, exists := Default[field.Key]; exists {
			panic("duplicate config key: " + field.Key)
		}
		Default[field.Key] = field
	}
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ cyan .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
