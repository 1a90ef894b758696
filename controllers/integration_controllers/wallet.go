package integration_controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zsmartex/coreledger/controllers/entities"
	"github.com/zsmartex/coreledger/controllers/helpers"
	"github.com/zsmartex/coreledger/controllers/queries"
)

func (i *Controller) ChargeWallet(c *fiber.Ctx) error {
	payload := new(queries.ChargeWalletParams)
	if ok, err := parse(c, payload); !ok {
		return err
	}

	result, err := i.ledger.ChargeWallet(c.UserContext(), payload.CustomerID, payload.Amount, payload.PaymentToken)
	if err != nil {
		return helpers.ErrorResponse(c, err)
	}

	return c.Status(201).JSON(entities.ResultToEntity(result))
}

func (i *Controller) DeductWallet(c *fiber.Ctx) error {
	payload := new(queries.DeductWalletParams)
	if ok, err := parse(c, payload); !ok {
		return err
	}

	result, err := i.ledger.DeductWallet(c.UserContext(), payload.CustomerID, payload.Amount, payload.OrderID)
	if err != nil {
		return helpers.ErrorResponse(c, err)
	}

	return c.Status(201).JSON(entities.ResultToEntity(result))
}
