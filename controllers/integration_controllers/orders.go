package integration_controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zsmartex/coreledger/controllers/entities"
	"github.com/zsmartex/coreledger/controllers/helpers"
	"github.com/zsmartex/coreledger/controllers/queries"
	"github.com/zsmartex/coreledger/services/ledger_service"
	"github.com/zsmartex/coreledger/types"
)

// CreateOrderPayment serves POST /orders/:type for jet, eat and vendor orders.
func (i *Controller) CreateOrderPayment(c *fiber.Ctx) error {
	order_type := types.OrderType(c.Params("type"))
	if !order_type.Valid() {
		return helpers.ErrorResponse(c, ledger_service.ErrInvalidOrderType)
	}

	payload := new(queries.OrderPaymentParams)
	if ok, err := parse(c, payload); !ok {
		return err
	}

	result, err := i.ledger.CreateOrderPayment(c.UserContext(), &ledger_service.OrderPayment{
		Type:         order_type,
		OrderID:      payload.OrderID,
		CustomerID:   payload.CustomerID,
		DriverID:     payload.DriverID,
		PartnerID:    payload.PartnerID,
		CompanyID:    payload.CompanyID,
		Total:        payload.Total,
		DriverShare:  payload.DriverShare,
		PartnerShare: payload.PartnerShare,
		CompanyShare: payload.CompanyShare,
	})
	if err != nil {
		return helpers.ErrorResponse(c, err)
	}

	return c.Status(201).JSON(entities.ResultToEntity(result))
}

func (i *Controller) CancelOrder(c *fiber.Ctx) error {
	return i.refund(c, types.RefundKindCancel)
}

func (i *Controller) ReturnOrder(c *fiber.Ctx) error {
	return i.refund(c, types.RefundKindReturn)
}

func (i *Controller) refund(c *fiber.Ctx, kind types.RefundKind) error {
	order_id, ok := helpers.ParamID(c, "order_id")
	if !ok {
		return helpers.InvalidParam(c, "order_id")
	}

	payload := new(queries.RefundParams)
	if ok, err := parse(c, payload); !ok {
		return err
	}

	result, err := i.ledger.RefundOrder(c.UserContext(), &ledger_service.Refund{
		Kind:         kind,
		OrderID:      order_id,
		CustomerID:   payload.CustomerID,
		CompanyID:    payload.CompanyID,
		Amount:       payload.Amount,
		DriverID:     payload.DriverID,
		DriverShare:  payload.DriverShare,
		PartnerID:    payload.PartnerID,
		PartnerShare: payload.PartnerShare,
	})
	if err != nil {
		return helpers.ErrorResponse(c, err)
	}

	return c.Status(201).JSON(entities.ResultToEntity(result))
}
