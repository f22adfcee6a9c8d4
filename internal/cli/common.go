package cli

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/codetroops/pos-lebanon/internal/config"
	"github.com/codetroops/pos-lebanon/internal/server"
	"github.com/codetroops/pos-lebanon/internal/storage"
)

// Version is set by the binaries at build time
var Version = "dev"

// v is shared by every command so flags bound in init() reach config.LoadWithViper
var v = config.NewViper()

// AddConfigFlags registers the persistent flags shared by all server-side commands
func AddConfigFlags(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.StringP("config", "c", "", "Path to configuration file (optional, can also use "+config.ConfigFileEnv+" env var)")
	flags.String("database-uri", "", "Database URI (sqlite://<path> or postgres://...)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-format", "", "Log format: json or text")

	_ = v.BindPFlag("config_file", flags.Lookup("config"))
	_ = v.BindPFlag("database.uri", flags.Lookup("database-uri"))
	_ = v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = v.BindPFlag("logging.format", flags.Lookup("log-format"))
}

// loadConfig loads and validates configuration
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadWithViper(v)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// openStore creates the logger and opens the configured database
func openStore(cfg *config.Config) (*logrus.Logger, *storage.GormStore, error) {
	logger := server.NewLogger(cfg.Logging.Level, cfg.Logging.Format)

	uri, err := cfg.GetParsedDatabaseURI()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid database URI: %w", err)
	}

	store, err := storage.NewGormStore(uri, logger)
	if err != nil {
		logger.WithError(err).WithField("database", uri.Redacted()).Error("Failed to initialize storage")
		return nil, nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	logger.WithFields(logrus.Fields{
		"driver":   uri.Driver(),
		"database": uri.Redacted(),
	}).Info("Database opened")
	return logger, store, nil
}

// closeStore closes store, logging instead of returning the error
func closeStore(store io.Closer, logger logrus.FieldLogger) {
	if err := store.Close(); err != nil {
		logger.WithError(err).Error("Storage close failed")
	}
}
