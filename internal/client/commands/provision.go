package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codetroops/pos-lebanon/internal/client/errors"
	"github.com/codetroops/pos-lebanon/internal/client/output"
	"github.com/codetroops/pos-lebanon/internal/client/prompts"
)

var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Link the Cash (LBP) payment method to every POS configuration",
	Long: `Ask the server to find or create the Cash (LBP) payment method and link it
to every POS configuration. Running it again changes nothing.`,
	Args: cobra.NoArgs,
	Run:  runProvision,
}

func init() {
	rootCmd.AddCommand(provisionCmd)
}

func runProvision(cmd *cobra.Command, args []string) {
	if !flagYes && !flagJSON {
		if !prompts.Confirm("link the Cash (LBP) payment method to every POS configuration") {
			output.PrintWarning("Aborted")
			return
		}
	}

	report, err := newAPIClient().Provision()
	if err != nil {
		errors.HandleClientError(err)
	}

	if flagJSON {
		output.OutputJSON(report, nil)
		return
	}

	verb := "Found"
	if report.Created {
		verb = "Created"
	}
	output.PrintSuccess(fmt.Sprintf("%s payment method %q (id %d)", verb, report.MethodName, report.MethodID))
	fmt.Fprintf(output.Stdout, "Linked to configs: %s\n", output.UintList(report.Linked))
	fmt.Fprintf(output.Stdout, "Already linked:    %s\n", output.UintList(report.Skipped))
}
