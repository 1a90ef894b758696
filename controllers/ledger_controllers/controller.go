package ledger_controllers

import (
	"github.com/zsmartex/coreledger/services/ledger_service"
)

type Controller struct {
	ledger *ledger_service.LedgerService
}

func NewController(ledger *ledger_service.LedgerService) *Controller {
	return &Controller{ledger: ledger}
}
