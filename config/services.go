package config

import (
	"github.com/zsmartex/coreledger/repositories"
	"github.com/zsmartex/coreledger/services/ledger_service"
	"github.com/zsmartex/coreledger/services/payment_service"
)

var LedgerService *ledger_service.LedgerService

func NewGateway(c GatewayConfig) payment_service.Gateway {
	if len(c.URL) == 0 {
		return payment_service.NewSimulatedGateway(c.Latency)
	}

	return payment_service.NewHTTPGateway(c.URL, c.Timeout)
}

// NewLedgerService wires the ledger onto the database opened by LoadLedger.
func NewLedgerService(publisher ledger_service.EventPublisher) *ledger_service.LedgerService {
	LedgerService = ledger_service.NewLedgerService(
		repositories.NewGormStore(DataBase),
		NewGateway(Ledger.Gateway),
		publisher,
		Logger,
		ledger_service.Config{CompanyID: Ledger.CompanyID},
	)

	return LedgerService
}
