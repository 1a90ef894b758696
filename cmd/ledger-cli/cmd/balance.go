package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zsmartex/coreledger/controllers/entities"
	"github.com/zsmartex/coreledger/models"
)

var balanceCmd = &cobra.Command{
	Use:   "balance [owner id] [kind]",
	Short: "Show the balance of one account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		owner_id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}

		kind, err := models.ParseAccountKind(args[1])
		if err != nil {
			return err
		}

		account, err := ledger.GetBalance(cmd.Context(), owner_id, kind)
		if err != nil {
			return err
		}

		return printJSON(cmd, entities.AccountToEntity(account))
	},
}
