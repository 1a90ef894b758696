package types

type OrderType string

var (
	OrderTypeJet    OrderType = "jet"
	OrderTypeEat    OrderType = "eat"
	OrderTypeVendor OrderType = "vendor"
)

func (t OrderType) Valid() bool {
	switch t {
	case OrderTypeJet, OrderTypeEat, OrderTypeVendor:
		return true
	default:
		return false
	}
}

type RefundKind string

var (
	RefundKindCancel RefundKind = "cancel"
	RefundKindReturn RefundKind = "return"
)

// Subjects the ledger publishes on the event bus.
const (
	SubjectTransactionCreated = "ledger.transaction_created"
	SubjectBalanceChanged     = "ledger.balance_changed"
)
