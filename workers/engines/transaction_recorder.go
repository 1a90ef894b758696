package engines

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/zsmartex/coreledger/models"
)

type PointWriter interface {
	NewPoint(name string, tags map[string]string, fields map[string]interface{}, at time.Time) error
}

// TransactionRecorderWorker keeps a time series of committed ledger transactions.
type TransactionRecorderWorker struct {
	writer PointWriter
}

func NewTransactionRecorderWorker(writer PointWriter) *TransactionRecorderWorker {
	return &TransactionRecorderWorker{writer: writer}
}

func (w *TransactionRecorderWorker) Process(payload []byte) error {
	var event models.TransactionCreatedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return err
	}

	tags := map[string]string{
		"category": string(event.Category),
	}
	if event.OrderID.Valid {
		tags["order_id"] = strconv.FormatInt(event.OrderID.Int64, 10)
	}

	total, _ := event.TotalAmount.Decimal().Float64()
	fields := map[string]interface{}{
		"id":           event.TransactionID,
		"total_amount": total,
	}

	at := event.CreatedAt
	if at.IsZero() {
		at = time.Now()
	}

	return w.writer.NewPoint("transactions", tags, fields, at)
}
