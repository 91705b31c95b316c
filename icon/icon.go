// Package icon renders UI symbols in the look the user configured.
//
// Five looks are supported: emoji, kaomoji, plain ASCII, colored squares and
// nerd-font glyphs.
package icon

import (
	"github.com/spf13/viper"
	"github.com/trakr-cli/trakr/key"
)

// Supported looks, in the order configuration help lists them.
const (
	emoji   = "emoji"
	kaomoji = "kaomoji"
	plain   = "plain"
	squares = "squares"
	nerd    = "nerd"
)

// AvailableVariants lists every supported look.
func AvailableVariants() []string {
	return []string{emoji, kaomoji, plain, squares, nerd}
}

// Get renders the icon in the configured look. An unknown look falls back to
// the plain form, so a typo in the config never blanks the UI.
func Get(i Icon) string {
	looks := registry[i]
	if s, ok := looks[viper.GetString(key.IconsVariant)]; ok {
		return s
	}
	return looks[plain]
}
