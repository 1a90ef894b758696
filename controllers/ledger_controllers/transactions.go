package ledger_controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zsmartex/coreledger/controllers/entities"
	"github.com/zsmartex/coreledger/controllers/helpers"
	"github.com/zsmartex/coreledger/controllers/queries"
)

func (l *Controller) CreateTransaction(c *fiber.Ctx) error {
	errors := new(helpers.Errors)
	payload := new(queries.CreateTransactionParams)

	if err := c.BodyParser(payload); err != nil {
		return helpers.InvalidBody(c)
	}

	helpers.Vaildate(payload, errors)
	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	result, err := l.ledger.CreateTransaction(c.UserContext(), payload.ToIntent())
	if err != nil {
		return helpers.ErrorResponse(c, err)
	}

	return c.Status(201).JSON(entities.ResultToEntity(result))
}

func (l *Controller) GetTransaction(c *fiber.Ctx) error {
	id, ok := helpers.ParamID(c, "id")
	if !ok {
		return helpers.InvalidParam(c, "id")
	}

	transaction, err := l.ledger.GetTransaction(c.UserContext(), id)
	if err != nil {
		return helpers.ErrorResponse(c, err)
	}

	return c.Status(200).JSON(entities.TransactionToEntity(transaction))
}
