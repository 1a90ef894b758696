package queries

import (
	"github.com/gookit/validate"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"

	"github.com/zsmartex/coreledger/models"
	"github.com/zsmartex/coreledger/services/ledger_service"
)

type PartyParams struct {
	OwnerID int64              `json:"owner_id"`
	Kind    models.AccountKind `json:"kind"`
}

func (p PartyParams) ToParty() ledger_service.Party {
	return ledger_service.Party{OwnerID: p.OwnerID, Kind: p.Kind}
}

type ShareParams struct {
	OwnerID int64              `json:"owner_id"`
	Kind    models.AccountKind `json:"kind"`
	Amount  decimal.Decimal    `json:"amount"`
}

type CreateTransactionParams struct {
	Description       string                     `json:"description" validate:"required"`
	Category          models.TransactionCategory `json:"category"`
	OrderID           null.Int64                 `json:"order_id"`
	ExternalReference string                     `json:"external_reference"`
	Payer             PartyParams                `json:"payer"`
	Total             decimal.Decimal            `json:"total" validate:"ValidateTotal"`
	Shares            []ShareParams              `json:"shares"`
}

func (p CreateTransactionParams) ValidateTotal(val decimal.Decimal) bool {
	return !val.IsZero()
}

func (p CreateTransactionParams) Messages() map[string]string {
	return validate.MS{
		"required":      "ledger.transaction.missing_{field}",
		"ValidateTotal": "ledger.transaction.zero_total",
	}
}

func (p CreateTransactionParams) ToIntent() *ledger_service.Intent {
	shares := make([]ledger_service.Share, 0, len(p.Shares))
	for _, share := range p.Shares {
		shares = append(shares, ledger_service.Share{
			Party:  ledger_service.Party{OwnerID: share.OwnerID, Kind: share.Kind},
			Amount: share.Amount,
		})
	}

	return &ledger_service.Intent{
		Description:       p.Description,
		Category:          p.Category,
		OrderID:           p.OrderID,
		ExternalReference: p.ExternalReference,
		Payer:             p.Payer.ToParty(),
		Total:             p.Total,
		Shares:            shares,
	}
}

type ChargeWalletParams struct {
	CustomerID   int64           `json:"customer_id" validate:"required|min:1"`
	Amount       decimal.Decimal `json:"amount" validate:"ValidateAmount"`
	PaymentToken string          `json:"payment_token"`
}

func (p ChargeWalletParams) ValidateAmount(val decimal.Decimal) bool {
	return val.IsPositive()
}

func (p ChargeWalletParams) Messages() map[string]string {
	return validate.MS{
		"required":       "ledger.wallet.missing_{field}",
		"min":            "ledger.wallet.invalid_{field}",
		"ValidateAmount": "ledger.wallet.non_positive_amount",
	}
}

type DeductWalletParams struct {
	CustomerID int64           `json:"customer_id" validate:"required|min:1"`
	Amount     decimal.Decimal `json:"amount" validate:"ValidateAmount"`
	OrderID    null.Int64      `json:"order_id"`
}

func (p DeductWalletParams) ValidateAmount(val decimal.Decimal) bool {
	return val.IsPositive()
}

func (p DeductWalletParams) Messages() map[string]string {
	return validate.MS{
		"required":       "ledger.wallet.missing_{field}",
		"min":            "ledger.wallet.invalid_{field}",
		"ValidateAmount": "ledger.wallet.non_positive_amount",
	}
}

type OnboardParams struct {
	FullName string `json:"full_name" validate:"required|maxLen:255"`
}

func (p OnboardParams) Messages() map[string]string {
	return validate.MS{
		"required": "ledger.contractor.missing_full_name",
		"maxLen":   "ledger.contractor.full_name_too_long",
	}
}

type EarningsParams struct {
	Amount  decimal.Decimal `json:"amount" validate:"ValidateAmount"`
	OrderID null.Int64      `json:"order_id"`
}

func (p EarningsParams) ValidateAmount(val decimal.Decimal) bool {
	return val.IsPositive()
}

func (p EarningsParams) Messages() map[string]string {
	return validate.MS{
		"ValidateAmount": "ledger.earnings.non_positive_amount",
	}
}

type RewardParams struct {
	Amount     decimal.Decimal `json:"amount" validate:"ValidateAmount"`
	RewardType string          `json:"reward_type" validate:"required"`
}

func (p RewardParams) ValidateAmount(val decimal.Decimal) bool {
	return val.IsPositive()
}

func (p RewardParams) Messages() map[string]string {
	return validate.MS{
		"required":       "ledger.reward.missing_reward_type",
		"ValidateAmount": "ledger.reward.non_positive_amount",
	}
}

type VendorBillParams struct {
	Amount      decimal.Decimal `json:"amount" validate:"ValidateAmount"`
	Description string          `json:"description" validate:"required"`
}

func (p VendorBillParams) ValidateAmount(val decimal.Decimal) bool {
	return val.IsPositive()
}

func (p VendorBillParams) Messages() map[string]string {
	return validate.MS{
		"required":       "ledger.bill.missing_description",
		"ValidateAmount": "ledger.bill.non_positive_amount",
	}
}

type SettlementParams struct {
	Amount           decimal.Decimal `json:"amount" validate:"ValidateAmount"`
	PaymentReference string          `json:"payment_reference" validate:"required"`
}

func (p SettlementParams) ValidateAmount(val decimal.Decimal) bool {
	return val.IsPositive()
}

func (p SettlementParams) Messages() map[string]string {
	return validate.MS{
		"required":       "ledger.settlement.missing_payment_reference",
		"ValidateAmount": "ledger.settlement.non_positive_amount",
	}
}

type OrderPaymentParams struct {
	OrderID      int64           `json:"order_id" validate:"required|min:1"`
	CustomerID   int64           `json:"customer_id" validate:"required|min:1"`
	DriverID     int64           `json:"driver_id"`
	PartnerID    int64           `json:"partner_id"`
	CompanyID    int64           `json:"company_id"`
	Total        decimal.Decimal `json:"total" validate:"ValidateTotal"`
	DriverShare  decimal.Decimal `json:"driver_share"`
	PartnerShare decimal.Decimal `json:"partner_share"`
	CompanyShare decimal.Decimal `json:"company_share"`
}

func (p OrderPaymentParams) ValidateTotal(val decimal.Decimal) bool {
	return val.IsPositive()
}

func (p OrderPaymentParams) Messages() map[string]string {
	return validate.MS{
		"required":      "ledger.order.missing_{field}",
		"min":           "ledger.order.invalid_{field}",
		"ValidateTotal": "ledger.order.non_positive_total",
	}
}

type RefundParams struct {
	CustomerID   int64           `json:"customer_id" validate:"required|min:1"`
	CompanyID    int64           `json:"company_id"`
	Amount       decimal.Decimal `json:"amount" validate:"ValidateAmount"`
	DriverID     int64           `json:"driver_id"`
	DriverShare  decimal.Decimal `json:"driver_share"`
	PartnerID    int64           `json:"partner_id"`
	PartnerShare decimal.Decimal `json:"partner_share"`
}

func (p RefundParams) ValidateAmount(val decimal.Decimal) bool {
	return val.IsPositive()
}

func (p RefundParams) Messages() map[string]string {
	return validate.MS{
		"required":       "ledger.refund.missing_{field}",
		"min":            "ledger.refund.invalid_{field}",
		"ValidateAmount": "ledger.refund.non_positive_amount",
	}
}
