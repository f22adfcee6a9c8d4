package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codetroops/pos-lebanon/internal/provision"
)

// ProvisionCmd runs the LBP payment method hook once
var ProvisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Link the Cash (LBP) payment method to every POS config",
	Long: `Find or create the Cash (LBP) payment method and link it to every POS
configuration that does not have it yet. Safe to run repeatedly.`,
	RunE: runProvision,
}

func runProvision(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore(store, logger)

	report, err := provision.New(store, logger, cfg.Provision.PaymentMethodName).Run(runContext(cmd))
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
