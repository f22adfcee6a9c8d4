package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codetroops/pos-lebanon/internal/client/errors"
	"github.com/codetroops/pos-lebanon/internal/client/output"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show authentication status",
	Long: `Check authentication status by calling the server's /api/v1/whoami endpoint.

Resolves server URL and credentials using normal precedence:
- URL: --url flag > POSCTL_URL env var > stored URL
- Token: --token flag > POSCTL_TOKEN env var > stored token`,
	Args: cobra.NoArgs,
	Run:  runWhoami,
}

func runWhoami(cmd *cobra.Command, args []string) {
	c := newAPIClient()

	who, err := c.Whoami()
	authenticated := err == nil
	if err != nil && errors.ExitCodeFor(err) != errors.ExitAuthError {
		errors.HandleClientError(err)
	}

	username := ""
	if authenticated {
		username = who.Username
		if username == "" {
			username = "(username unknown)"
		}
	}

	if flagJSON {
		output.OutputJSON(map[string]interface{}{
			"server":        c.BaseURL,
			"authenticated": authenticated,
			"username":      username,
		}, nil)
	} else if authenticated {
		output.PrintSuccess(fmt.Sprintf("Authenticated to %s as %s", c.BaseURL, username))
	} else {
		output.PrintError(fmt.Sprintf("Not authenticated to %s", c.BaseURL))
		fmt.Fprintln(output.Stderr, "Run 'posctl login' to authenticate")
	}

	if !authenticated {
		errors.ExitWithCode(errors.ExitAuthError, "")
	}
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
