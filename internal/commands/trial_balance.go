package commands

import (
	"fmt"
	"time"

	"github.com/SscSPs/ledger_tax_app/internal/dto"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

func newTrialBalanceCommand() *cobra.Command {
	var (
		orgID           string
		userID          string
		start           string
		end             string
		includeUnposted bool
	)

	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Print the trial balance of an organization as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := trialBalanceParams(start, end, includeUnposted)
			if err != nil {
				return err
			}

			a, _, err := openApp(cmd.Context(), newLogger())
			if err != nil {
				return err
			}
			defer a.Close()

			tb, err := a.Services.Reporting.TrialBalance(cmd.Context(), orgID, params, userID)
			if err != nil {
				return fmt.Errorf("trial balance: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), dto.ToTrialBalanceResponse(tb))
		},
	}

	cmd.Flags().StringVar(&orgID, "org", "", "organization ID")
	cmd.Flags().StringVar(&userID, "user", "", "acting user ID, must be a member of the organization")
	cmd.Flags().StringVar(&start, "start", "", "first entry date included (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "last entry date included (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&includeUnposted, "include-unposted", false, "include entries that are not posted")
	_ = cmd.MarkFlagRequired("org")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func trialBalanceParams(start, end string, includeUnposted bool) (dto.TrialBalanceParams, error) {
	var params dto.TrialBalanceParams
	var err error
	if params.StartDate, err = parseDateFlag("start", start); err != nil {
		return params, err
	}
	if params.EndDate, err = parseDateFlag("end", end); err != nil {
		return params, err
	}
	if params.StartDate != nil && params.EndDate != nil && params.EndDate.Before(*params.StartDate) {
		return params, fmt.Errorf("--end %s is before --start %s", end, start)
	}
	postedOnly := !includeUnposted
	params.PostedOnly = &postedOnly
	return params, nil
}

func parseDateFlag(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q, expected YYYY-MM-DD", name, value)
	}
	return &t, nil
}
