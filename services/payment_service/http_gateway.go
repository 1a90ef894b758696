package payment_service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/zsmartex/coreledger/models"
)

var ErrGatewayUnavailable = errors.New("payment gateway unavailable")

type authorizeRequest struct {
	Token  string       `json:"token"`
	Amount models.Money `json:"amount"`
}

// HTTPGateway posts charges to a remote payment provider as JSON.
type HTTPGateway struct {
	URL     string
	Timeout time.Duration
}

func NewHTTPGateway(url string, timeout time.Duration) *HTTPGateway {
	return &HTTPGateway{URL: url, Timeout: timeout}
}

func (g *HTTPGateway) timeout(ctx context.Context) time.Duration {
	timeout := g.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); timeout <= 0 || remaining < timeout {
			timeout = remaining
		}
	}

	return timeout
}

func (g *HTTPGateway) Authorize(ctx context.Context, token string, amount models.Money) (*Authorization, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	agent := fiber.Post(g.URL)
	agent.JSON(authorizeRequest{Token: token, Amount: amount})
	if timeout := g.timeout(ctx); timeout > 0 {
		agent.Timeout(timeout)
	}

	if err := agent.Parse(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	var authorization Authorization
	code, body, errs := agent.Struct(&authorization)
	if code < 200 || code >= 300 {
		if len(errs) > 0 {
			return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, errs[0])
		}

		return nil, fmt.Errorf("%w: status %d: %s", ErrGatewayUnavailable, code, string(body))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, errs[0])
	}

	if !authorization.Success && len(authorization.Reason) == 0 {
		authorization.Reason = "declined by payment provider"
	}

	return &authorization, nil
}
