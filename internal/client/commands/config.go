package commands

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/codetroops/pos-lebanon/internal/client"
	"github.com/codetroops/pos-lebanon/internal/client/errors"
	"github.com/codetroops/pos-lebanon/internal/client/output"
	"github.com/codetroops/pos-lebanon/internal/client/prompts"
	"github.com/codetroops/pos-lebanon/internal/client/validation"
	"github.com/codetroops/pos-lebanon/internal/currency"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and update POS configurations",
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List POS configurations",
	Args:  cobra.NoArgs,
	Run:   runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <config-id>",
	Short: "Show one POS configuration",
	Args:  cobra.ExactArgs(1),
	Run:   runConfigGet,
}

var configDataCmd = &cobra.Command{
	Use:   "data <config-id>",
	Short: "Show the fields a POS session loads for a configuration",
	Args:  cobra.ExactArgs(1),
	Run:   runConfigData,
}

var configSetCurrencyCmd = &cobra.Command{
	Use:   "set-currency <config-id>",
	Short: "Update the LBP/USD rate or the LBP total display",
	Long: `Update the currency settings of a POS configuration.

Only the flags given are changed:
  posctl config set-currency 1 --rate 90000
  posctl config set-currency 1 --display-lbp-total=false`,
	Args: cobra.ExactArgs(1),
	Run:  runConfigSetCurrency,
}

var (
	flagRate       float64
	flagDisplayLBP bool
)

func init() {
	configSetCurrencyCmd.Flags().Float64Var(&flagRate, "rate", 0, "LBP per 1 USD")
	configSetCurrencyCmd.Flags().BoolVar(&flagDisplayLBP, "display-lbp-total", true, "Show the LBP total on receipts and the payment screen")

	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configDataCmd)
	configCmd.AddCommand(configSetCurrencyCmd)
	rootCmd.AddCommand(configCmd)
}

func parseConfigIDArg(raw string) uint {
	id, err := validation.ParseConfigID(raw)
	if err != nil {
		errors.ExitWithCode(errors.ExitInvalidArguments, err.Error())
	}
	return id
}

func printConfigs(configs []client.Config) {
	tw := output.NewTableWriter()
	tw.WriteHeader("ID", "NAME", "LBP/USD", "SHOW LBP", "PAYMENT METHODS")
	for _, cfg := range configs {
		tw.WriteRow(
			strconv.FormatUint(uint64(cfg.ID), 10),
			cfg.Name,
			currency.FormatRate(cfg.LBPUSDRate),
			output.YesNo(cfg.DisplayLBPTotal),
			output.UintList(cfg.PaymentMethodIDs),
		)
	}
	_ = tw.Flush()
}

func runConfigList(cmd *cobra.Command, args []string) {
	configs, err := newAPIClient().ListConfigs()
	if err != nil {
		errors.HandleClientError(err)
	}

	if flagJSON {
		output.OutputJSON(configs, nil)
		return
	}
	if len(configs) == 0 {
		fmt.Fprintln(output.Stdout, "No POS configurations")
		return
	}
	printConfigs(configs)
}

func runConfigGet(cmd *cobra.Command, args []string) {
	id := parseConfigIDArg(args[0])

	cfg, err := newAPIClient().GetConfig(id)
	if err != nil {
		errors.HandleClientError(err)
	}

	if flagJSON {
		output.OutputJSON(cfg, nil)
		return
	}
	printConfigs([]client.Config{*cfg})
}

func runConfigData(cmd *cobra.Command, args []string) {
	id := parseConfigIDArg(args[0])

	data, err := newAPIClient().PosData(id)
	if err != nil {
		errors.HandleClientError(err)
	}

	if flagJSON {
		output.OutputJSON(data, nil)
		return
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tw := output.NewTableWriter()
	tw.WriteHeader("FIELD", "VALUE")
	for _, k := range keys {
		tw.WriteRow(k, fmt.Sprint(data[k]))
	}
	_ = tw.Flush()
}

func runConfigSetCurrency(cmd *cobra.Command, args []string) {
	id := parseConfigIDArg(args[0])

	var update client.CurrencyUpdate
	if cmd.Flags().Changed("rate") {
		if err := validation.ValidateRate(flagRate); err != nil {
			errors.ExitWithCode(errors.ExitInvalidArguments, err.Error())
		}
		update.LBPUSDRate = &flagRate
	}
	if cmd.Flags().Changed("display-lbp-total") {
		update.DisplayLBPTotal = &flagDisplayLBP
	}
	if update.LBPUSDRate == nil && update.DisplayLBPTotal == nil {
		errors.ExitWithCode(errors.ExitInvalidArguments, "nothing to update. Use --rate or --display-lbp-total")
	}

	if update.LBPUSDRate != nil && !flagYes && !flagJSON {
		if !prompts.Confirm(fmt.Sprintf("set the rate of config %d to 1 USD = %s LBP", id, currency.FormatRate(flagRate))) {
			output.PrintWarning("Aborted")
			return
		}
	}

	cfg, err := newAPIClient().UpdateCurrency(id, update)
	if err != nil {
		errors.HandleClientError(err)
	}

	if flagJSON {
		output.OutputJSON(cfg, nil)
		return
	}
	output.PrintSuccess(fmt.Sprintf("Config %d: 1 USD = %s LBP, LBP total shown: %s",
		cfg.ID, currency.FormatRate(cfg.LBPUSDRate), output.YesNo(cfg.DisplayLBPTotal)))
}
