package models

import (
	"time"

	"github.com/volatiletech/null"
)

type TransactionCreatedEvent struct {
	TransactionID     int64               `json:"transaction_id"`
	Description       string              `json:"description"`
	Category          TransactionCategory `json:"category"`
	TotalAmount       Money               `json:"total_amount"`
	OrderID           null.Int64          `json:"order_id"`
	ExternalReference string              `json:"external_reference,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
}
