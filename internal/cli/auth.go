package cli

import (
	"errors"
	"fmt"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/codetroops/pos-lebanon/internal/auth"
	"github.com/codetroops/pos-lebanon/internal/storage"
)

// AuthCmd represents the auth command
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication utilities",
	Long:  `Utilities for managing cashier passwords and API tokens.`,
}

// HashPasswordCmd represents the hash-password command
var HashPasswordCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Generate a pbkdf2-sha512 hash for a password",
	Long: `Generate a passlib-compatible pbkdf2-sha512 hash to store in the
res_users.password column or in a fixtures file.`,
	RunE: runHashPassword,
}

// IssueTokenCmd represents the issue-token command
var IssueTokenCmd = &cobra.Command{
	Use:   "issue-token",
	Short: "Issue a bearer token for an existing user",
	Long:  `Issue an HS256 bearer token for API callers when auth.type is jwt.`,
	RunE:  runIssueToken,
}

var (
	tokenLogin string
	tokenTTL   time.Duration
)

func init() {
	AuthCmd.AddCommand(HashPasswordCmd)
	AuthCmd.AddCommand(IssueTokenCmd)

	HashPasswordCmd.Flags().Int("rounds", 0, "PBKDF2 rounds (defaults to auth.pbkdf2_rounds)")
	_ = v.BindPFlag("auth.pbkdf2_rounds", HashPasswordCmd.Flags().Lookup("rounds"))

	IssueTokenCmd.Flags().StringVar(&tokenLogin, "login", "", "Login of the user the token is issued for (required)")
	IssueTokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Token lifetime (defaults to auth.jwt_ttl)")
	_ = IssueTokenCmd.MarkFlagRequired("login")
}

func runHashPassword(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Prompt for password
	fmt.Fprint(cmd.ErrOrStderr(), "Enter password: ")

	// Read password with hidden input
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Fprintln(cmd.ErrOrStderr()) // New line after password input

	password := string(passwordBytes)
	if len(password) == 0 {
		return fmt.Errorf("password cannot be empty")
	}

	// Generate hash
	hash, err := auth.NewCryptContext(cfg.Auth.PBKDF2Rounds).Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// Output hash
	fmt.Fprintln(cmd.ErrOrStderr(), "\npbkdf2-sha512 hash (store in res_users.password):")
	fmt.Fprintln(cmd.OutOrStdout(), hash)

	return nil
}

func runIssueToken(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ttl := cfg.Auth.JWTTTL
	if tokenTTL > 0 {
		ttl = tokenTTL
	}

	logger, store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore(store, logger)

	jwtAuth, err := auth.NewJWTAuth(cfg.Auth.JWTSecret, ttl, logger)
	if err != nil {
		return fmt.Errorf("cannot issue tokens: %w", err)
	}

	// Tokens are only issued for active users
	user, err := store.FindUserByLogin(runContext(cmd), tokenLogin)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("user %q not found or inactive", tokenLogin)
	}
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	token, expiresAt, err := jwtAuth.IssueToken(user.Login, user.ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Token for %s (expires %s):\n", user.Login, expiresAt.Format(time.RFC3339))
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
