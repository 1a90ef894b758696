package ledger_controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zsmartex/coreledger/controllers/entities"
	"github.com/zsmartex/coreledger/controllers/helpers"
	"github.com/zsmartex/coreledger/controllers/queries"
	"github.com/zsmartex/coreledger/models"
)

func (l *Controller) GetAccount(c *fiber.Ctx) error {
	owner_id, ok := helpers.ParamID(c, "owner_id")
	if !ok {
		return helpers.InvalidParam(c, "owner_id")
	}

	kind, err := models.ParseAccountKind(c.Params("kind"))
	if err != nil {
		return helpers.ErrorResponse(c, err)
	}

	account, err := l.ledger.GetBalance(c.UserContext(), owner_id, kind)
	if err != nil {
		return helpers.ErrorResponse(c, err)
	}

	return c.Status(200).JSON(entities.AccountToEntity(account))
}

func (l *Controller) ChargeAccount(c *fiber.Ctx) error {
	errors := new(helpers.Errors)
	payload := new(queries.ChargeWalletParams)

	if err := c.BodyParser(payload); err != nil {
		return helpers.InvalidBody(c)
	}

	helpers.Vaildate(payload, errors)
	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	result, err := l.ledger.ChargeWallet(c.UserContext(), payload.CustomerID, payload.Amount, payload.PaymentToken)
	if err != nil {
		return helpers.ErrorResponse(c, err)
	}

	return c.Status(201).JSON(entities.ResultToEntity(result))
}
