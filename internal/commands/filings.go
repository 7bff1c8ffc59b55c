package commands

import (
	"fmt"
	"strings"

	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
	"github.com/spf13/cobra"
)

func newFilingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filings",
		Short: "Compute statutory tax filings",
	}
	cmd.AddCommand(newFilingsComputeCommand())
	return cmd
}

func newFilingsComputeCommand() *cobra.Command {
	var (
		orgID  string
		userID string
		form   string
		year   int
		month  int
	)

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Recompute a filing from upstream records",
		Long: `Derives the figures for one filing period and stores it as CALCULATED.
F07 and F11 are monthly and need --month. F14 is annual and must not set it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			period, err := parsePeriod(form, year, month)
			if err != nil {
				return err
			}

			a, _, err := openApp(cmd.Context(), newLogger())
			if err != nil {
				return err
			}
			defer a.Close()

			filing, err := a.Services.Filing.ComputeFiling(cmd.Context(), orgID, period, userID)
			if err != nil {
				return fmt.Errorf("compute %s: %w", period.FormType, err)
			}
			return writeJSON(cmd.OutOrStdout(), filing)
		},
	}

	cmd.Flags().StringVar(&orgID, "org", "", "organization ID")
	cmd.Flags().StringVar(&userID, "user", "", "acting user ID, must be a member of the organization")
	cmd.Flags().StringVar(&form, "form", "", "form type: F07, F11 or F14")
	cmd.Flags().IntVar(&year, "year", 0, "period year")
	cmd.Flags().IntVar(&month, "month", 0, "period month (1-12) for monthly forms")
	_ = cmd.MarkFlagRequired("org")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("form")
	_ = cmd.MarkFlagRequired("year")

	return cmd
}

// parsePeriod builds a filing period from flags. A zero month means no month.
func parsePeriod(form string, year, month int) (domain.FilingPeriod, error) {
	period := domain.FilingPeriod{
		FormType: domain.FormType(strings.ToUpper(strings.TrimSpace(form))),
		Year:     year,
	}
	if month != 0 {
		m := month
		period.Month = &m
	}
	if err := period.Validate(); err != nil {
		return domain.FilingPeriod{}, err
	}
	return period, nil
}
