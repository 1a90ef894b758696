package helpers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/zsmartex/coreledger/models"
	"github.com/zsmartex/coreledger/services/ledger_service"
	"github.com/zsmartex/coreledger/services/payment_service"
)

type errorMapping struct {
	target error
	status int
	key    string
}

// the first match wins
var errorMappings = []errorMapping{
	{models.ErrInvalidAmount, 422, "ledger.invalid_amount"},
	{models.ErrShareMismatch, 422, "ledger.share_mismatch"},
	{models.ErrUnbalancedTransaction, 422, "ledger.unbalanced_transaction"},
	{models.ErrInvalidDescription, 422, "ledger.invalid_description"},
	{models.ErrInvalidAccountKind, 422, "ledger.invalid_account_kind"},
	{models.ErrInvalidContractorType, 422, "ledger.invalid_contractor_type"},
	{ledger_service.ErrInvalidOrderType, 422, "ledger.invalid_order_type"},
	{ledger_service.ErrInvalidRefundKind, 422, "ledger.invalid_refund_kind"},
	{models.ErrInsufficientFunds, 422, "ledger.insufficient_funds"},
	{models.ErrAccountNotFound, 404, "ledger.account_not_found"},
	{models.ErrContractorNotFound, 404, "ledger.contractor_not_found"},
	{models.ErrTransactionNotFound, 404, "ledger.transaction_not_found"},
	{models.ErrPaymentDeclined, 402, "ledger.payment_declined"},
	{payment_service.ErrGatewayUnavailable, 503, "ledger.payment_gateway_unavailable"},
	{context.DeadlineExceeded, 504, "server.timeout"},
}

// ErrorStatus maps a ledger error to its http status and error key.
func ErrorStatus(err error) (int, string) {
	for _, mapping := range errorMappings {
		if errors.Is(err, mapping.target) {
			return mapping.status, mapping.key
		}
	}

	return 500, "server.internal_error"
}

func ErrorResponse(c *fiber.Ctx, err error) error {
	status, key := ErrorStatus(err)

	return c.Status(status).JSON(Errors{
		Errors: []string{key},
	})
}
