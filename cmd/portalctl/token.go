package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MatiasXp0/forca-tatica/internal/auth"
	"github.com/MatiasXp0/forca-tatica/internal/config"
	"github.com/MatiasXp0/forca-tatica/internal/domain"
)

var (
	tokenSubject string
	tokenName    string
	tokenRole    string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for the portal API",
	Long: `Sign an access token with AUTH_JWT_SECRET. The portal has no login
flow; operators hand these tokens to staff members and front-ends.`,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "stable user identifier (required)")
	tokenCmd.Flags().StringVar(&tokenName, "name", "", "display name recorded as author")
	tokenCmd.Flags().StringVar(&tokenRole, "role", string(domain.RoleViewer), "VIEWER, EDITOR or ADMIN")
	_ = tokenCmd.MarkFlagRequired("subject")
}

func runToken(cmd *cobra.Command, _ []string) error {
	role := domain.Role(strings.ToUpper(strings.TrimSpace(tokenRole)))
	if !role.Valid() {
		return fmt.Errorf("invalid role %q", tokenRole)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLMinutes)
	token, expiresAt, err := tokens.GenerateToken(tokenSubject, tokenName, role)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", expiresAt.Format("2006-01-02 15:04 MST"))
	return nil
}
