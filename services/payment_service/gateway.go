package payment_service

import (
	"context"

	"github.com/zsmartex/coreledger/models"
)

// Authorization is the gateway's answer to a charge. A declined charge is not an error:
// Success is false and Reason says why.
type Authorization struct {
	Success           bool   `json:"success"`
	ExternalReference string `json:"reference"`
	Reason            string `json:"reason"`
}

type Gateway interface {
	Authorize(ctx context.Context, token string, amount models.Money) (*Authorization, error)
}

func Declined(reason string) *Authorization {
	return &Authorization{Success: false, Reason: reason}
}
