// Package open launches URLs and files with the system's default handler.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/trakr-cli/trakr/constant"
)

// launcher returns the platform's open command for input, or an error on
// platforms without one.
func launcher(input string) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case constant.Darwin:
		return exec.Command("open", input), nil
	case constant.Linux:
		return exec.Command("xdg-open", input), nil
	case constant.Android:
		return exec.Command("termux-open", input), nil
	case constant.Windows:
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", input), nil
	}

	return nil, fmt.Errorf("no opener for %s", runtime.GOOS)
}

// Run opens input with the default handler and waits for it to finish.
func Run(input string) error {
	cmd, err := launcher(input)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Start opens input with the default handler without waiting.
func Start(input string) error {
	cmd, err := launcher(input)
	if err != nil {
		return err
	}
	return cmd.Start()
}
