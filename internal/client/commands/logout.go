package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codetroops/pos-lebanon/internal/client/auth"
	"github.com/codetroops/pos-lebanon/internal/client/errors"
	"github.com/codetroops/pos-lebanon/internal/client/output"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove stored credentials",
	Long: `Remove the stored server URL and credentials.

Succeeds even if no credentials are stored.`,
	Args: cobra.NoArgs,
	Run:  runLogout,
}

func runLogout(cmd *cobra.Command, args []string) {
	server, _ := auth.LoadStoredURL()

	if err := auth.DeleteCredentials(); err != nil {
		errors.ExitWithError(err, "failed to remove credentials")
	}

	if flagJSON {
		output.OutputJSON(map[string]any{"logged_out": true, "server": server}, nil)
		return
	}
	if server == "" {
		output.PrintSuccess("No stored credentials")
		return
	}
	output.PrintSuccess(fmt.Sprintf("Logged out of %s", server))
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
