package integration_controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zsmartex/coreledger/controllers/entities"
	"github.com/zsmartex/coreledger/controllers/helpers"
	"github.com/zsmartex/coreledger/models"
)

func (i *Controller) OnboardCustomer(c *fiber.Ctx) error {
	return i.onboard(c, models.ContractorCustomer)
}

func (i *Controller) GetCustomer(c *fiber.Ctx) error {
	return i.getContractor(c, models.ContractorCustomer)
}

func (i *Controller) GetWalletBalance(c *fiber.Ctx) error {
	customer_id, ok := helpers.ParamID(c, "id")
	if !ok {
		return helpers.InvalidParam(c, "id")
	}

	account, err := i.ledger.GetBalance(c.UserContext(), customer_id, models.KindWallet)
	if err != nil {
		return helpers.ErrorResponse(c, err)
	}

	return c.Status(200).JSON(entities.AccountToEntity(account))
}
