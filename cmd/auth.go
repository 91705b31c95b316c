// Package cmd implements the command-line interface for trakr.
package cmd

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/trakr-cli/trakr/color"
	"github.com/trakr-cli/trakr/icon"
	"github.com/trakr-cli/trakr/key"
	"github.com/trakr-cli/trakr/open"
	"github.com/trakr-cli/trakr/style"
	"github.com/trakr-cli/trakr/trakt"
	"github.com/trakr-cli/trakr/util"
)

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLogoutCmd)
}

// authCmd manages the trakt.tv account session.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the trakt.tv account session",
}

// authLoginCmd walks through the OAuth device flow: the user enters a short
// code on trakt.tv while the client polls for approval.
var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with trakt.tv through the device code flow",
	Long: `Request a device code, show the verification URL and user code, and poll
until the account approves the device. Tokens are stored in the system keyring.`,
	Run: func(cmd *cobra.Command, args []string) {
		ensureClientCredentials()

		code, err := trakt.BeginDeviceAuth()
		handleErr(err)

		fmt.Printf(
			"Visit %s and enter the code %s\n",
			style.Fg(color.Blue)(code.VerificationURL),
			style.New().Bold(true).Foreground(color.Yellow).Render(code.UserCode),
		)

		confirmOpenInBrowser := survey.Confirm{
			Message: "Open the verification page in your browser?",
			Default: true,
		}

		var openInBrowser bool
		err = survey.AskOne(&confirmOpenInBrowser, &openInBrowser)
		if err == nil && openInBrowser {
			util.Ignore(func() error { return open.Start(code.VerificationURL) })
		}

		erase := util.PrintErasable(fmt.Sprintf("%s Waiting for approval...", icon.Get(icon.Progress)))
		_, err = trakt.PollDeviceToken(code)
		erase()
		handleErr(err)

		fmt.Printf("%s Logged in\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

// authStatusCmd reports whether a usable session exists.
var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether an account session is active",
	Run: func(cmd *cobra.Command, args []string) {
		if trakt.Authenticated() {
			fmt.Printf("%s Logged in\n", style.Fg(color.Green)(icon.Get(icon.Success)))
			return
		}

		fmt.Printf(
			"%s Not logged in. Run %s to authenticate\n",
			icon.Get(icon.Fail),
			style.Fg(color.Yellow)("trakr auth login"),
		)
	},
}

// authLogoutCmd drops the stored token pair.
var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored account session",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(trakt.Logout())
		fmt.Printf("%s Logged out\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

// ensureClientCredentials interactively collects missing application
// credentials before the device flow can start.
func ensureClientCredentials() {
	if viper.GetString(key.TraktClientID) == "" {
		input := survey.Input{
			Message: "Trakt client ID is not set. Please enter it:",
			Help:    "Create an application at https://trakt.tv/oauth/applications",
		}
		var response string
		handleErr(survey.AskOne(&input, &response))

		if response == "" {
			handleErr(errors.New("client id is required"))
		}

		viper.Set(key.TraktClientID, response)
		writeConfig()
	}

	if viper.GetString(key.TraktClientSecret) == "" {
		input := survey.Input{
			Message: "Trakt client secret is not set. Please enter it:",
		}
		var response string
		handleErr(survey.AskOne(&input, &response))

		if response == "" {
			handleErr(errors.New("client secret is required"))
		}

		viper.Set(key.TraktClientSecret, response)
		writeConfig()
	}
}

func writeConfig() {
	switch err := viper.WriteConfig(); err.(type) {
	case viper.ConfigFileNotFoundError:
		handleErr(viper.SafeWriteConfig())
	default:
		handleErr(err)
	}
}
