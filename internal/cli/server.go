package cli

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/codetroops/pos-lebanon/internal/auth"
	"github.com/codetroops/pos-lebanon/internal/config"
	"github.com/codetroops/pos-lebanon/internal/posdata"
	"github.com/codetroops/pos-lebanon/internal/provision"
	"github.com/codetroops/pos-lebanon/internal/server"
	"github.com/codetroops/pos-lebanon/internal/server/handlers"
)

// ServerCmd represents the server command
var ServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the POS Lebanon HTTP server",
	Long: `Start the HTTP server that authenticates POS cashiers over JSON-RPC and
provides a REST API for the dual-currency (USD/LBP) POS configuration.`,
	RunE: runServer,
}

func init() {
	flags := ServerCmd.Flags()
	flags.Int("port", 0, "Port to listen on")
	flags.String("host", "", "Host to bind to")
	flags.String("auth-type", "", "API caller authentication: none, basic or jwt")
	flags.Int("rate-limit", 0, "Requests per minute per client IP (0 disables)")
	flags.Bool("provision", true, "Link the LBP payment method to every POS config on startup")

	_ = v.BindPFlag("server.port", flags.Lookup("port"))
	_ = v.BindPFlag("server.host", flags.Lookup("host"))
	_ = v.BindPFlag("auth.type", flags.Lookup("auth-type"))
	_ = v.BindPFlag("rate_limit.requests_per_minute", flags.Lookup("rate-limit"))
	_ = v.BindPFlag("provision.on_startup", flags.Lookup("provision"))
}

// newAuthenticator builds the API caller authenticator selected by auth.type
func newAuthenticator(cfg *config.Config, adapter *auth.Adapter, logger logrus.FieldLogger) (auth.Authenticator, error) {
	switch cfg.Auth.Type {
	case "none":
		logger.Info("Authentication disabled (auth.type=none)")
		return auth.NewNoAuth(), nil
	case "basic":
		return auth.NewBasicAuth(adapter, logger), nil
	case "jwt":
		jwtAuth, err := auth.NewJWTAuth(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize jwt auth: %w", err)
		}
		logger.WithField("ttl", cfg.Auth.JWTTTL.String()).Info("JWT auth initialized")
		return jwtAuth, nil
	default:
		return nil, fmt.Errorf("unsupported auth type: %s", cfg.Auth.Type)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Create logger and initialize storage
	logger, store, err := openStore(cfg)
	if err != nil {
		return err
	}

	// Log startup
	logger.WithFields(logrus.Fields{
		"version":     Version,
		"port":        cfg.Server.Port,
		"config_file": v.GetString("config_file"),
		"auth_type":   cfg.Auth.Type,
		"jwt_secret":  cfg.MaskSecret(),
	}).Info("Server starting")

	// Install/upgrade hook
	provisioner := provision.New(store, logger, cfg.Provision.PaymentMethodName)
	if cfg.Provision.OnStartup {
		if _, err := provisioner.Run(runContext(cmd)); err != nil {
			closeStore(store, logger)
			return fmt.Errorf("failed to provision LBP payment method: %w", err)
		}
	}

	// Initialize authenticators
	crypt := auth.NewCryptContext(cfg.Auth.PBKDF2Rounds)
	adapter := auth.NewAdapter(store, store, crypt, logger)
	authenticator, err := newAuthenticator(cfg, adapter, logger)
	if err != nil {
		closeStore(store, logger)
		return err
	}

	// Create server
	srv := server.NewServer(cfg, logger, store, authenticator)

	// Create all handlers
	metricsHandler := handlers.NewMetricsHandler(logger)
	healthHandler := handlers.NewHealthHandler(store, logger)
	whoamiHandler := handlers.NewWhoamiHandler(authenticator, logger)
	posAuthHandler := handlers.NewPosAuthHandler(adapter, logger, metricsHandler)
	configHandler := handlers.NewConfigHandler(store, posdata.Default, logger, metricsHandler)
	receiptHandler := handlers.NewReceiptHandler(configHandler, logger, metricsHandler)
	provisionHandler := handlers.NewProvisionHandler(provisioner, logger, metricsHandler)

	// Set all handlers
	srv.SetHooks(server.Hooks{
		OnRequest:     metricsHandler.IncrementTotalRequests,
		OnAuthFailure: metricsHandler.IncrementAuthFailures,
		OnRateLimited: metricsHandler.IncrementRateLimitExceeded,
	})
	srv.SetHandlers(server.HandlerSet{
		Health:              healthHandler.GetHealth,
		Metrics:             metricsHandler.GetMetrics,
		Whoami:              whoamiHandler.GetWhoami,
		AuthenticateUserRPC: posAuthHandler.AuthenticateUserRPC,
		AuthenticateUser:    posAuthHandler.AuthenticateUser,
		ListConfigs:         configHandler.ListConfigs,
		GetConfig:           configHandler.GetConfig,
		GetPosData:          configHandler.GetPosData,
		UpdateCurrency:      configHandler.UpdateCurrency,
		Convert:             configHandler.Convert,
		ShareReceipt:        receiptHandler.ShareWhatsApp,
		Provision:           provisionHandler.RunProvision,
	})

	// Start server
	logger.WithField("address", fmt.Sprintf("http://%s:%d", cfg.Server.Host, cfg.Server.Port)).
		Info("Server ready to accept connections")

	if err := srv.Start(); err != nil {
		logger.WithError(err).Error("Server stopped with error")
		return err
	}

	return nil
}

// runContext returns the command context, or a background context when none was set
func runContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
