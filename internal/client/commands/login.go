package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codetroops/pos-lebanon/internal/client"
	"github.com/codetroops/pos-lebanon/internal/client/auth"
	"github.com/codetroops/pos-lebanon/internal/client/config"
	"github.com/codetroops/pos-lebanon/internal/client/errors"
	"github.com/codetroops/pos-lebanon/internal/client/output"
	"github.com/codetroops/pos-lebanon/internal/client/prompts"
)

var loginCmd = &cobra.Command{
	Use:   "login [server-url]",
	Short: "Authenticate with a POS server",
	Long: `Authenticate with a POS server and store credentials.

Server URL can be provided as an argument or via POSCTL_URL environment variable.
If both are provided, the argument takes precedence.

Credentials are stored in ~/.config/posctl/credentials.yaml with 0600
permissions (or in $POSCTL_CONFIG_DIR). Only one server is remembered at a time.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runLogin,
}

func runLogin(cmd *cobra.Command, args []string) {
	var serverURL string

	if len(args) > 0 {
		serverURL = config.NormalizeURL(args[0])
	} else {
		var err error
		serverURL, err = config.ResolveURL("")
		if err != nil {
			errors.ExitWithCode(errors.ExitInvalidArguments, "no server URL specified. Provide server URL as argument or set POSCTL_URL environment variable")
		}
	}

	username, err := prompts.PromptUsername("Username")
	if err != nil {
		errors.ExitWithError(err, "failed to read username")
	}

	password, err := prompts.PromptPassword()
	if err != nil {
		errors.ExitWithError(err, "failed to read password")
	}

	token := fmt.Sprintf("%s:%s", username, password)

	// Test the credentials before storing them
	c := client.NewClient(serverURL, token, flagTimeout, flagVerbose)
	who, err := c.Whoami()
	if err != nil {
		if errors.ExitCodeFor(err) == errors.ExitAuthError {
			errors.ExitWithCode(errors.ExitAuthError, "authentication failed: invalid credentials")
		}
		errors.HandleClientError(err)
	}

	if err := auth.SaveCredentials(serverURL, token); err != nil {
		errors.ExitWithError(err, "failed to save credentials")
	}

	if flagJSON {
		output.OutputJSON(map[string]string{
			"server": serverURL,
			"user":   who.Username,
		}, nil)
	} else {
		output.PrintSuccess(fmt.Sprintf("Logged in to %s as %s", serverURL, who.Username))
	}
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
