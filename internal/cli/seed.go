package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codetroops/pos-lebanon/internal/auth"
	"github.com/codetroops/pos-lebanon/internal/fixtures"
)

// SeedCmd loads users, employees and POS configs from a YAML file
var SeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load fixtures from a YAML file",
	Long: `Insert users, employees and POS configurations from a YAML file.
Plaintext passwords are hashed with pbkdf2-sha512 before they are stored.`,
	RunE: runSeed,
}

var seedFile string

func init() {
	SeedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "Path to the fixtures YAML file (required)")
	_ = SeedCmd.MarkFlagRequired("file")
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	f, err := fixtures.LoadFile(seedFile)
	if err != nil {
		return err
	}

	logger, store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore(store, logger)

	summary, err := fixtures.Apply(runContext(cmd), f, store, auth.NewCryptContext(cfg.Auth.PBKDF2Rounds), logger)
	if err != nil {
		return fmt.Errorf("seeding stopped after %d users, %d employees, %d POS configs: %w",
			summary.Users, summary.Employees, summary.PosConfigs, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d users, %d employees, %d POS configs\n",
		summary.Users, summary.Employees, summary.PosConfigs)
	return nil
}
