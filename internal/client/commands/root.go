package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/codetroops/pos-lebanon/internal/client"
	"github.com/codetroops/pos-lebanon/internal/client/config"
	"github.com/codetroops/pos-lebanon/internal/client/errors"
	"github.com/codetroops/pos-lebanon/internal/client/output"
)

var (
	// Global flags
	flagURL     string
	flagToken   string
	flagJSON    bool
	flagVerbose bool
	flagTimeout time.Duration
	flagYes     bool
)

// Version is set at build time
var Version = "dev"

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "posctl",
	Short: "POS Lebanon CLI client",
	Long: `posctl is a command-line client for the POS Lebanon server.

It reads and updates LBP/USD currency settings of POS configurations, converts
amounts, checks cashier credentials and builds WhatsApp receipt links.`,
	SilenceUsage: true,
}

// Execute executes the root command
func Execute() error {
	rootCmd.Version = Version
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagURL, "url", "", "Server URL (or use POSCTL_URL env var)")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "'login:password' or a bearer token (or use POSCTL_TOKEN env var)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 30*time.Second, "HTTP request timeout")
	rootCmd.PersistentFlags().BoolVarP(&flagYes, "yes", "y", false, "Skip confirmation prompts")
}

// newAPIClient resolves URL and token with the usual precedence, exiting on failure
func newAPIClient() *client.Client {
	serverURL, err := config.ResolveURL(flagURL)
	if err != nil {
		errors.ExitWithCode(errors.ExitInvalidArguments, err.Error())
	}

	token, source, err := config.ResolveToken(flagToken)
	if err != nil {
		errors.ExitWithError(err, "failed to resolve authentication token")
	}
	if flagVerbose {
		fmt.Fprintf(output.Stderr, "[DEBUG] server %s, credentials from %s\n", serverURL, source)
	}

	return client.NewClient(serverURL, token, flagTimeout, flagVerbose)
}
