package payment_service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zsmartex/coreledger/models"
)

const (
	ReasonInvalidToken  = "Invalid payment token"
	ReasonInvalidAmount = "Invalid payment amount"
)

// SimulatedGateway approves every well-formed charge after Latency.
type SimulatedGateway struct {
	Latency time.Duration
}

func NewSimulatedGateway(latency time.Duration) *SimulatedGateway {
	return &SimulatedGateway{Latency: latency}
}

func (g *SimulatedGateway) Authorize(ctx context.Context, token string, amount models.Money) (*Authorization, error) {
	if g.Latency > 0 {
		timer := time.NewTimer(g.Latency)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if len(strings.TrimSpace(token)) == 0 {
		return Declined(ReasonInvalidToken), nil
	}

	if !amount.IsPositive() {
		return Declined(ReasonInvalidAmount), nil
	}

	return &Authorization{
		Success:           true,
		ExternalReference: uuid.NewString(),
	}, nil
}
