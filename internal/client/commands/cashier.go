package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codetroops/pos-lebanon/internal/client/errors"
	"github.com/codetroops/pos-lebanon/internal/client/output"
	"github.com/codetroops/pos-lebanon/internal/client/prompts"
)

var cashierCmd = &cobra.Command{
	Use:   "cashier",
	Short: "Cashier account checks",
}

var cashierCheckCmd = &cobra.Command{
	Use:   "check <config-id>",
	Short: "Check a cashier's POS login and employee link",
	Long: `Prompt for a cashier login and password and run them through the POS
authentication used by the point of sale. The password is never stored.`,
	Args: cobra.ExactArgs(1),
	Run:  runCashierCheck,
}

func init() {
	cashierCmd.AddCommand(cashierCheckCmd)
	rootCmd.AddCommand(cashierCmd)
}

func runCashierCheck(cmd *cobra.Command, args []string) {
	id := parseConfigIDArg(args[0])

	username, err := prompts.PromptUsername("Cashier login")
	if err != nil {
		errors.ExitWithError(err, "failed to read login")
	}
	password, err := prompts.PromptPassword()
	if err != nil {
		errors.ExitWithError(err, "failed to read password")
	}

	result, err := newAPIClient().AuthenticateCashier(id, username, password)
	if err != nil {
		errors.HandleClientError(err)
	}

	if flagJSON {
		output.OutputJSON(result, nil)
	} else if result.Success {
		employee := "none"
		if n, ok := result.EmployeeID.(float64); ok {
			employee = fmt.Sprintf("%.0f", n)
		}
		output.PrintSuccess(fmt.Sprintf("%s (user %d, employee %s) can open POS config %d",
			result.UserName, result.UserID, employee, id))
	} else {
		output.PrintError(result.Message)
	}

	if !result.Success {
		errors.ExitWithCode(errors.ExitAuthError, "")
	}
}
