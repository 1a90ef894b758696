// Package cmd holds the operator commands of ledger-cli.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zsmartex/coreledger/config"
	"github.com/zsmartex/coreledger/services/ledger_service"
)

var (
	debug  bool
	ledger *ledger_service.LedgerService
)

var rootCmd = &cobra.Command{
	Use:   "ledger-cli",
	Short: "Operate the coreledger database",
	Long: `ledger-cli runs maintenance tasks directly against the ledger database.

Example:
  ledger-cli onboard --type company "Platform"
  ledger-cli balance 42 wallet
  ledger-cli reconcile --repair`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if debug {
			os.Setenv("LOG_LEVEL", "debug")
		}

		if err := config.LoadLedger(); err != nil {
			return err
		}

		ledger = config.NewLedgerService(nil)

		return nil
	},
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(onboardCmd)
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(reconcileCmd)
}

func printJSON(cmd *cobra.Command, value interface{}) error {
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(payload))
	return nil
}
