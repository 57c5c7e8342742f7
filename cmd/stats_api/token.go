package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/recruit-stats/internal/config"
	"github.com/jonathan/recruit-stats/internal/server"
	"github.com/jonathan/recruit-stats/internal/stats"
	"github.com/spf13/cobra"
)

var (
	tokenUser string
	tokenRole string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for local testing",
	Long:  "Signs a dashboard token with JWT_SECRET for the given user and role and prints it.",
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "User UUID (random when empty)")
	tokenCmd.Flags().StringVar(&tokenRole, "role", stats.RoleRecruiter, "Role: admin or recruteur")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	userID := uuid.New()
	if tokenUser != "" {
		id, err := uuid.Parse(tokenUser)
		if err != nil {
			return fmt.Errorf("invalid --user: %w", err)
		}
		userID = id
	}

	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to load JWT config: %w", err)
	}
	tok, err := server.NewJWTService(jwtCfg).GenerateToken(userID, tokenRole)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), tok)
	return nil
}
