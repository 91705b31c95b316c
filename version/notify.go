package version

import (
	"fmt"

	"github.com/trakr-cli/trakr/color"
	"github.com/trakr-cli/trakr/constant"
	"github.com/trakr-cli/trakr/icon"
	"github.com/trakr-cli/trakr/key"
	"github.com/trakr-cli/trakr/style"
	"github.com/trakr-cli/trakr/util"
	"github.com/spf13/viper"
)

// Notify prints an upgrade hint when a newer release than the running build
// exists. It stays silent on any failure along the way, an update check must
// never get between the user and their command.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking for a newer release...", icon.Get(icon.Progress)))
	latest, err := Latest()
	erase()
	if err != nil {
		return
	}

	if comp, err := Compare(latest, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Printf(`
%s %s is out %s
%s

`,
		style.Fg(color.Green)(icon.Get(icon.Success)),
		style.Bold("trakr "+latest),
		style.Faint(fmt.Sprintf("(you run %s)", constant.Version)),
		style.Faint("https://github.com/trakr-cli/trakr/releases/tag/v"+latest),
	)
}
