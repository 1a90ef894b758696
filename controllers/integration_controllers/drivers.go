package integration_controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zsmartex/coreledger/controllers/entities"
	"github.com/zsmartex/coreledger/controllers/helpers"
	"github.com/zsmartex/coreledger/controllers/queries"
	"github.com/zsmartex/coreledger/models"
)

func (i *Controller) OnboardDriver(c *fiber.Ctx) error {
	return i.onboard(c, models.ContractorDriver)
}

func (i *Controller) GetDriver(c *fiber.Ctx) error {
	return i.getContractor(c, models.ContractorDriver)
}

func (i *Controller) AddDriverEarnings(c *fiber.Ctx) error {
	return i.earnings(c, models.ContractorDriver)
}

func (i *Controller) AddDriverReward(c *fiber.Ctx) error {
	id, ok := helpers.ParamID(c, "id")
	if !ok {
		return helpers.InvalidParam(c, "id")
	}

	payload := new(queries.RewardParams)
	if ok, err := parse(c, payload); !ok {
		return err
	}

	result, err := i.ledger.AddReward(c.UserContext(), id, payload.Amount, payload.RewardType)
	if err != nil {
		return helpers.ErrorResponse(c, err)
	}

	return c.Status(201).JSON(entities.ResultToEntity(result))
}
