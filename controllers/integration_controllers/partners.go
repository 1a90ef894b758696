package integration_controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zsmartex/coreledger/controllers/entities"
	"github.com/zsmartex/coreledger/controllers/helpers"
	"github.com/zsmartex/coreledger/controllers/queries"
	"github.com/zsmartex/coreledger/models"
)

// Restaurants and vendors are both partners in the ledger.

func (i *Controller) OnboardPartner(c *fiber.Ctx) error {
	return i.onboard(c, models.ContractorPartner)
}

func (i *Controller) GetPartner(c *fiber.Ctx) error {
	return i.getContractor(c, models.ContractorPartner)
}

func (i *Controller) AddPartnerEarnings(c *fiber.Ctx) error {
	return i.earnings(c, models.ContractorPartner)
}

func (i *Controller) SettlePartner(c *fiber.Ctx) error {
	return i.settle(c)
}

func (i *Controller) CreateVendorBill(c *fiber.Ctx) error {
	id, ok := helpers.ParamID(c, "id")
	if !ok {
		return helpers.InvalidParam(c, "id")
	}

	payload := new(queries.VendorBillParams)
	if ok, err := parse(c, payload); !ok {
		return err
	}

	result, err := i.ledger.CreateVendorBill(c.UserContext(), id, payload.Amount, payload.Description)
	if err != nil {
		return helpers.ErrorResponse(c, err)
	}

	return c.Status(201).JSON(entities.ResultToEntity(result))
}
