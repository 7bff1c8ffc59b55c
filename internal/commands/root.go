// Package commands implements the ledgerctl operator CLI.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/SscSPs/ledger_tax_app/internal/platform/app"
	"github.com/SscSPs/ledger_tax_app/internal/platform/config"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

// NewRootCommand creates the top-level ledgerctl command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "ledgerctl",
		Short:             "Operate the ledger and tax filing database",
		Version:           Version,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		SilenceUsage:      true,
	}

	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newFilingsCommand())
	rootCmd.AddCommand(newTrialBalanceCommand())

	return rootCmd
}

// newLogger writes text logs to stderr so stdout stays machine readable.
func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// openApp loads configuration and wires the services.
func openApp(ctx context.Context, logger *slog.Logger) (*app.App, *config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return a, cfg, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
