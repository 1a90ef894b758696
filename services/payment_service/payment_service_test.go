package payment_service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zsmartex/coreledger/models"
)

func TestSimulatedGateway(t *testing.T) {
	gateway := NewSimulatedGateway(0)
	ctx := context.Background()

	authorization, err := gateway.Authorize(ctx, "tok_visa", models.MustMoney("50"))
	require.NoError(t, err)
	assert.True(t, authorization.Success)
	assert.NotEmpty(t, authorization.ExternalReference)

	authorization, err = gateway.Authorize(ctx, "  ", models.MustMoney("50"))
	require.NoError(t, err)
	assert.False(t, authorization.Success)
	assert.Equal(t, ReasonInvalidToken, authorization.Reason)

	authorization, err = gateway.Authorize(ctx, "tok_visa", models.Zero)
	require.NoError(t, err)
	assert.False(t, authorization.Success)
	assert.Equal(t, ReasonInvalidAmount, authorization.Reason)
}

func TestSimulatedGatewayCancelled(t *testing.T) {
	gateway := NewSimulatedGateway(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gateway.Authorize(ctx, "tok_visa", models.MustMoney("50"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPGateway(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Token  string       `json:"token"`
			Amount models.Money `json:"amount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		switch payload.Token {
		case "tok_declined":
			w.Write([]byte(`{"success":false,"reason":"card declined"}`))
		case "tok_broken":
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`upstream failure`))
		default:
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success":   true,
				"reference": "pay_" + payload.Amount.String(),
			})
		}
	}))
	defer server.Close()

	gateway := NewHTTPGateway(server.URL, 5*time.Second)
	ctx := context.Background()

	authorization, err := gateway.Authorize(ctx, "tok_visa", models.MustMoney("50"))
	require.NoError(t, err)
	assert.True(t, authorization.Success)
	assert.Equal(t, "pay_50.0000", authorization.ExternalReference)

	authorization, err = gateway.Authorize(ctx, "tok_declined", models.MustMoney("50"))
	require.NoError(t, err)
	assert.False(t, authorization.Success)
	assert.Equal(t, "card declined", authorization.Reason)

	_, err = gateway.Authorize(ctx, "tok_broken", models.MustMoney("50"))
	assert.ErrorIs(t, err, ErrGatewayUnavailable)
}
