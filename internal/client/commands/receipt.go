package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/codetroops/pos-lebanon/internal/client/errors"
	"github.com/codetroops/pos-lebanon/internal/client/output"
	"github.com/codetroops/pos-lebanon/internal/receipt"
)

var receiptCmd = &cobra.Command{
	Use:   "receipt",
	Short: "Receipt sharing",
}

var receiptWhatsAppCmd = &cobra.Command{
	Use:   "whatsapp <config-id>",
	Short: "Build a WhatsApp link that shares a receipt",
	Long: `Build a wa.me link carrying the receipt text with USD and LBP totals.

The receipt is read from a YAML or JSON file:
  shop_name: Main Shop
  order_name: Order 00042
  total_usd: 12.5
  lines:
    - {name: Manousheh, qty: 2, price_usd: 2.5}`,
	Args: cobra.ExactArgs(1),
	Run:  runReceiptWhatsApp,
}

var (
	flagPhone       string
	flagReceiptFile string
)

func init() {
	receiptWhatsAppCmd.Flags().StringVar(&flagPhone, "phone", "", "Customer phone number (required)")
	receiptWhatsAppCmd.Flags().StringVarP(&flagReceiptFile, "file", "f", "", "Receipt YAML or JSON file (required)")
	_ = receiptWhatsAppCmd.MarkFlagRequired("phone")
	_ = receiptWhatsAppCmd.MarkFlagRequired("file")

	receiptCmd.AddCommand(receiptWhatsAppCmd)
	rootCmd.AddCommand(receiptCmd)
}

func loadReceipt(path string) (receipt.Receipt, error) {
	var r receipt.Receipt
	data, err := os.ReadFile(path)
	if err != nil {
		return r, fmt.Errorf("failed to read receipt file: %w", err)
	}
	if err := yaml.Unmarshal(data, &r); err != nil {
		return r, fmt.Errorf("failed to parse receipt file: %w", err)
	}
	return r, nil
}

func runReceiptWhatsApp(cmd *cobra.Command, args []string) {
	id := parseConfigIDArg(args[0])

	if !receipt.ValidPhone(flagPhone) {
		errors.ExitWithCode(errors.ExitInvalidArguments, fmt.Sprintf("invalid phone number: '%s'", flagPhone))
	}

	r, err := loadReceipt(flagReceiptFile)
	if err != nil {
		errors.ExitWithCode(errors.ExitInvalidArguments, err.Error())
	}

	share, err := newAPIClient().ShareReceipt(id, flagPhone, r)
	if err != nil {
		errors.HandleClientError(err)
	}

	if flagJSON {
		output.OutputJSON(share, nil)
		return
	}
	fmt.Fprintln(output.Stdout, share.URL)
}
