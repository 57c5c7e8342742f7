package main

import (
	"context"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the dashboard tables and indexes",
	Long:  "Applies the embedded schema. Safe to run repeatedly.",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	env, err := setup(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.db.Migrate(ctx); err != nil {
		return err
	}
	env.log.Info("schema applied")
	return nil
}
