package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codetroops/pos-lebanon/internal/cli"
)

var version = "1.0.0"

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pos-lebanon",
	Short: "POS Lebanon server",
	Long: `POS Lebanon serves cashier authentication for the point of sale, LBP/USD
currency settings per POS configuration, and WhatsApp receipt links. It also
provisions the Cash (LBP) payment method on every POS configuration.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cli.Version = version
	cli.AddConfigFlags(rootCmd)

	rootCmd.AddCommand(cli.ServerCmd)
	rootCmd.AddCommand(cli.AuthCmd)
	rootCmd.AddCommand(cli.ProvisionCmd)
	rootCmd.AddCommand(cli.SeedCmd)

	rootCmd.SetVersionTemplate(`{{.Version}}
`)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
