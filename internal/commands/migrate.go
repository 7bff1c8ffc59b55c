package commands

import (
	"fmt"

	"github.com/SscSPs/ledger_tax_app/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back schema migrations",
	}
	cmd.AddCommand(newMigrateUpCommand())
	cmd.AddCommand(newMigrateDownCommand())
	return cmd
}

func newMigrateUpCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd, path, 0)
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "migrations directory (defaults to MIGRATIONS_PATH)")
	return cmd
}

func newMigrateDownCommand() *cobra.Command {
	var (
		path  string
		steps int
	)

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if steps <= 0 {
				return fmt.Errorf("--steps must be positive, got %d", steps)
			}
			return runMigrate(cmd, path, steps)
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "migrations directory (defaults to MIGRATIONS_PATH)")
	cmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	return cmd
}

// runMigrate applies every pending migration when steps is zero, otherwise rolls back steps.
func runMigrate(cmd *cobra.Command, path string, steps int) error {
	logger := newLogger()
	a, cfg, err := openApp(cmd.Context(), logger)
	if err != nil {
		return err
	}
	defer a.Close()

	if path == "" {
		path = cfg.MigrationsPath
	}

	var changed bool
	if steps == 0 {
		changed, err = a.MigrateUp(path)
	} else {
		changed, err = database.MigrateDown(a.SQL.DB, path, steps, logger)
	}
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if changed {
		fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "no change")
	}
	return nil
}
