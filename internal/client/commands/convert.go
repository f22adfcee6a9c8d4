package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codetroops/pos-lebanon/internal/client/errors"
	"github.com/codetroops/pos-lebanon/internal/client/output"
	"github.com/codetroops/pos-lebanon/internal/client/validation"
	"github.com/codetroops/pos-lebanon/internal/currency"
)

var convertCmd = &cobra.Command{
	Use:   "convert <config-id> <amount-usd>",
	Short: "Convert a USD amount to LBP with a configuration's rate",
	Args:  cobra.ExactArgs(2),
	Run:   runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) {
	id := parseConfigIDArg(args[0])
	amount, err := validation.ParseAmount(args[1])
	if err != nil {
		errors.ExitWithCode(errors.ExitInvalidArguments, err.Error())
	}

	conv, err := newAPIClient().Convert(id, amount)
	if err != nil {
		errors.HandleClientError(err)
	}

	if flagJSON {
		output.OutputJSON(conv, nil)
		return
	}
	fmt.Fprintf(output.Stdout, "%s = %s LBP (1 USD = %s LBP)\n", conv.USDFormatted, conv.LBPFormatted, currency.FormatRate(conv.Rate))
	if !conv.ShowLBP {
		output.PrintWarning("LBP totals are hidden for this configuration")
	}
}
