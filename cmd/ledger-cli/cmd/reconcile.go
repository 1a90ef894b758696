package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var repair bool

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Compare stored balances with the journal",
	Long: `Replays the journal of every account and lists the accounts whose stored balance
differs. With --repair each drifted balance is overwritten with its replay.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		drifts, err := ledger.Reconcile(cmd.Context())
		if err != nil {
			return err
		}

		for _, drift := range drifts {
			fmt.Fprintf(cmd.OutOrStdout(), "account %d (%d/%s): stored %s, journal %s\n",
				drift.AccountID, drift.OwnerID, drift.Kind, drift.Stored.StringFixed(4), drift.Replayed.StringFixed(4))

			if !repair {
				continue
			}

			if _, err := ledger.RebuildBalance(cmd.Context(), drift.AccountID); err != nil {
				return err
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d drifted account(s)\n", len(drifts))
		return nil
	},
}

func init() {
	reconcileCmd.Flags().BoolVar(&repair, "repair", false, "rebuild drifted balances from the journal")
}
