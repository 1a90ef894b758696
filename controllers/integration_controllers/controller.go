package integration_controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zsmartex/coreledger/controllers/entities"
	"github.com/zsmartex/coreledger/controllers/helpers"
	"github.com/zsmartex/coreledger/controllers/queries"
	"github.com/zsmartex/coreledger/models"
	"github.com/zsmartex/coreledger/services/ledger_service"
)

// Controller serves the endpoints the marketplace back office calls, one group per party type.
type Controller struct {
	ledger *ledger_service.LedgerService
}

func NewController(ledger *ledger_service.LedgerService) *Controller {
	return &Controller{ledger: ledger}
}

// parse decodes and validates a request body, writing the error response itself when it fails.
func parse(c *fiber.Ctx, payload interface{}) (bool, error) {
	errors := new(helpers.Errors)

	if err := c.BodyParser(payload); err != nil {
		return false, helpers.InvalidBody(c)
	}

	helpers.Vaildate(payload, errors)
	if errors.Size() > 0 {
		return false, c.Status(422).JSON(errors)
	}

	return true, nil
}

func (i *Controller) onboard(c *fiber.Ctx, contractor_type models.ContractorType) error {
	payload := new(queries.OnboardParams)
	if ok, err := parse(c, payload); !ok {
		return err
	}

	contractor, err := i.ledger.Onboard(c.UserContext(), payload.FullName, contractor_type)
	if err != nil {
		return helpers.ErrorResponse(c, err)
	}

	return c.Status(201).JSON(entities.ContractorToEntity(contractor))
}

// getContractor answers 404 for ids that belong to a party of another type.
func (i *Controller) getContractor(c *fiber.Ctx, contractor_type models.ContractorType) error {
	id, ok := helpers.ParamID(c, "id")
	if !ok {
		return helpers.InvalidParam(c, "id")
	}

	contractor, err := i.ledger.GetContractor(c.UserContext(), id)
	if err != nil {
		return helpers.ErrorResponse(c, err)
	}

	if contractor.Type != contractor_type {
		return helpers.ErrorResponse(c, models.ErrContractorNotFound)
	}

	return c.Status(200).JSON(entities.ContractorToEntity(contractor))
}

func (i *Controller) earnings(c *fiber.Ctx, contractor_type models.ContractorType) error {
	id, ok := helpers.ParamID(c, "id")
	if !ok {
		return helpers.InvalidParam(c, "id")
	}

	payload := new(queries.EarningsParams)
	if ok, err := parse(c, payload); !ok {
		return err
	}

	result, err := i.ledger.AddEarnings(c.UserContext(), contractor_type, id, payload.Amount, payload.OrderID)
	if err != nil {
		return helpers.ErrorResponse(c, err)
	}

	return c.Status(201).JSON(entities.ResultToEntity(result))
}

func (i *Controller) settle(c *fiber.Ctx) error {
	id, ok := helpers.ParamID(c, "id")
	if !ok {
		return helpers.InvalidParam(c, "id")
	}

	payload := new(queries.SettlementParams)
	if ok, err := parse(c, payload); !ok {
		return err
	}

	result, err := i.ledger.Settle(c.UserContext(), id, payload.Amount, payload.PaymentReference)
	if err != nil {
		return helpers.ErrorResponse(c, err)
	}

	return c.Status(201).JSON(entities.ResultToEntity(result))
}
