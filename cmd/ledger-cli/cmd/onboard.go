package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zsmartex/coreledger/controllers/entities"
	"github.com/zsmartex/coreledger/models"
)

var contractorType string

var onboardCmd = &cobra.Command{
	Use:   "onboard [full name]",
	Short: "Register a party and open its accounts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		contractor_type, err := models.ParseContractorType(contractorType)
		if err != nil {
			return err
		}

		contractor, err := ledger.Onboard(cmd.Context(), args[0], contractor_type)
		if err != nil {
			return err
		}

		return printJSON(cmd, entities.ContractorToEntity(contractor))
	},
}

func init() {
	onboardCmd.Flags().StringVar(&contractorType, "type", string(models.ContractorCustomer), "customer, driver, partner or company")
}
