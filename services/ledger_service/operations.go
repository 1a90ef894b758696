package ledger_service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"

	"github.com/zsmartex/coreledger/models"
	"github.com/zsmartex/coreledger/types"
)

var (
	ErrInvalidOrderType  = errors.New("invalid order type")
	ErrInvalidRefundKind = errors.New("invalid refund kind")
)

func requirePositive(name string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: %s must be positive (%s)", models.ErrInvalidAmount, name, amount.String())
	}

	return nil
}

func requireNonNegative(name string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s cannot be negative (%s)", models.ErrInvalidAmount, name, amount.String())
	}

	return nil
}

func (s *LedgerService) companyOr(company_id int64) int64 {
	if company_id != 0 {
		return company_id
	}

	return s.config.CompanyID
}

func revenueOf(owner_id int64) Party {
	return Party{OwnerID: owner_id, Kind: models.KindRevenue}
}

func walletOf(owner_id int64) Party {
	return Party{OwnerID: owner_id, Kind: models.KindWallet}
}

func payableOf(owner_id int64) Party {
	return Party{OwnerID: owner_id, Kind: models.KindPayable}
}

type OrderPayment struct {
	Type         types.OrderType
	OrderID      int64
	CustomerID   int64
	DriverID     int64
	PartnerID    int64
	CompanyID    int64
	Total        decimal.Decimal
	DriverShare  decimal.Decimal
	PartnerShare decimal.Decimal
	CompanyShare decimal.Decimal
}

// CreateOrderPayment debits the customer's wallet for an order and splits the total between
// the driver, the partner (restaurant or vendor) and the platform.
func (s *LedgerService) CreateOrderPayment(ctx context.Context, payment *OrderPayment) (*Result, error) {
	if !payment.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOrderType, payment.Type)
	}

	if err := requirePositive("total amount", payment.Total); err != nil {
		return nil, err
	}

	for _, share := range []struct {
		name   string
		amount decimal.Decimal
	}{
		{"driver share", payment.DriverShare},
		{"partner share", payment.PartnerShare},
		{"company share", payment.CompanyShare},
	} {
		if err := requireNonNegative(share.name, share.amount); err != nil {
			return nil, err
		}
	}

	shares := make([]Share, 0, 3)
	if payment.DriverID != 0 || !payment.DriverShare.IsZero() {
		shares = append(shares, Share{Party: revenueOf(payment.DriverID), Amount: payment.DriverShare})
	}
	if payment.PartnerID != 0 || !payment.PartnerShare.IsZero() {
		shares = append(shares, Share{Party: revenueOf(payment.PartnerID), Amount: payment.PartnerShare})
	}
	shares = append(shares, Share{Party: revenueOf(s.companyOr(payment.CompanyID)), Amount: payment.CompanyShare})

	return s.CreateTransaction(ctx, &Intent{
		Description: fmt.Sprintf("Order payment for %s order #%d", payment.Type, payment.OrderID),
		Category:    models.CategoryOrderPayment,
		OrderID:     null.Int64From(payment.OrderID),
		Payer:       walletOf(payment.CustomerID),
		Total:       payment.Total,
		Shares:      shares,
	})
}

// ChargeWallet tops up a customer's wallet from an external payment. The charge is authorized
// before anything is written; a declined charge leaves the ledger untouched.
func (s *LedgerService) ChargeWallet(ctx context.Context, customer_id int64, amount decimal.Decimal, payment_token string) (*Result, error) {
	if err := requirePositive("charge amount", amount); err != nil {
		return nil, err
	}

	money, err := models.NewMoney(amount)
	if err != nil {
		return nil, err
	}

	wallet := walletOf(customer_id)
	payable := payableOf(s.config.CompanyID)
	for _, party := range []Party{wallet, payable} {
		if _, err := s.store.Accounts().GetByOwnerAndKind(ctx, party.OwnerID, party.Kind); err != nil {
			return nil, err
		}
	}

	authorization, err := s.gateway.Authorize(ctx, payment_token, money)
	if err != nil {
		s.logger.WithError(err).WithField("customer_id", customer_id).Error("Payment authorization failed")
		return nil, err
	}

	if !authorization.Success {
		s.logger.WithField("customer_id", customer_id).WithField("reason", authorization.Reason).Warn("Payment declined")
		return nil, &models.PaymentDeclinedError{Reason: authorization.Reason}
	}

	result, err := s.CreateTransaction(ctx, &Intent{
		Description:       fmt.Sprintf("Wallet top-up for customer %d - Payment ID: %s", customer_id, authorization.ExternalReference),
		Category:          models.CategoryWalletTopUp,
		ExternalReference: authorization.ExternalReference,
		Payer:             payable,
		Total:             amount,
		Shares:            []Share{{Party: wallet, Amount: amount}},
	})
	if err != nil {
		s.logger.WithError(err).WithField("payment_reference", authorization.ExternalReference).Error("Payment authorized but top-up was not recorded")
		return nil, err
	}

	result.PaymentReference = authorization.ExternalReference
	return result, nil
}

// DeductWallet moves funds from a customer's wallet to platform revenue.
func (s *LedgerService) DeductWallet(ctx context.Context, customer_id int64, amount decimal.Decimal, order_id null.Int64) (*Result, error) {
	if err := requirePositive("deduction amount", amount); err != nil {
		return nil, err
	}

	description := "Wallet deduction"
	if order_id.Valid {
		description = fmt.Sprintf("Wallet deduction for order #%d", order_id.Int64)
	}

	return s.CreateTransaction(ctx, &Intent{
		Description: description,
		Category:    models.CategoryWalletDeduction,
		OrderID:     order_id,
		Payer:       walletOf(customer_id),
		Total:       amount,
		Shares:      []Share{{Party: revenueOf(s.config.CompanyID), Amount: amount}},
	})
}

func (s *LedgerService) payout(ctx context.Context, contractor_id int64, amount decimal.Decimal, description string, category models.TransactionCategory, order_id null.Int64) (*Result, error) {
	if err := requirePositive("amount", amount); err != nil {
		return nil, err
	}

	return s.CreateTransaction(ctx, &Intent{
		Description: description,
		Category:    category,
		OrderID:     order_id,
		Payer:       payableOf(s.config.CompanyID),
		Total:       amount,
		Shares:      []Share{{Party: revenueOf(contractor_id), Amount: amount}},
	})
}

// AddEarnings credits a driver's or partner's revenue account from the platform payable.
func (s *LedgerService) AddEarnings(ctx context.Context, contractor_type models.ContractorType, contractor_id int64, amount decimal.Decimal, order_id null.Int64) (*Result, error) {
	label := "Earnings"
	switch contractor_type {
	case models.ContractorDriver:
		label = "Delivery earnings"
	case models.ContractorPartner:
		label = "Restaurant earnings"
	}

	description := label
	if order_id.Valid {
		description = fmt.Sprintf("%s for order #%d", label, order_id.Int64)
	}

	return s.payout(ctx, contractor_id, amount, description, models.CategoryEarnings, order_id)
}

func (s *LedgerService) AddReward(ctx context.Context, driver_id int64, amount decimal.Decimal, reward_type string) (*Result, error) {
	return s.payout(ctx, driver_id, amount, fmt.Sprintf("Driver reward: %s", reward_type), models.CategoryReward, null.Int64{})
}

func (s *LedgerService) CreateVendorBill(ctx context.Context, vendor_id int64, amount decimal.Decimal, description string) (*Result, error) {
	return s.payout(ctx, vendor_id, amount, fmt.Sprintf("Vendor commission bill - %s", description), models.CategoryVendorBill, null.Int64{})
}

// Settle pays out a contractor's accumulated revenue. Unlike other debits of a revenue account,
// a settlement may never take the balance below zero.
func (s *LedgerService) Settle(ctx context.Context, contractor_id int64, amount decimal.Decimal, payment_reference string) (*Result, error) {
	if err := requirePositive("settlement amount", amount); err != nil {
		return nil, err
	}

	return s.CreateTransaction(ctx, &Intent{
		Description:       fmt.Sprintf("Settlement payment - %s", payment_reference),
		Category:          models.CategorySettlement,
		ExternalReference: payment_reference,
		Payer:             revenueOf(contractor_id),
		Total:             amount,
		Shares:            []Share{{Party: payableOf(s.config.CompanyID), Amount: amount}},
		CoverDebits:       true,
	})
}

type Refund struct {
	Kind         types.RefundKind
	OrderID      int64
	CustomerID   int64
	CompanyID    int64
	Amount       decimal.Decimal
	DriverID     int64
	DriverShare  decimal.Decimal
	PartnerID    int64
	PartnerShare decimal.Decimal
}

// RefundOrder reverses (part of) an order payment: the customer's wallet is credited and the
// platform, plus optionally the driver and partner, give back their shares. It is recorded as a
// new transaction with every sign of the original flipped.
func (s *LedgerService) RefundOrder(ctx context.Context, refund *Refund) (*Result, error) {
	var label string
	switch refund.Kind {
	case types.RefundKindCancel:
		label = "cancelled"
	case types.RefundKindReturn:
		label = "returned"
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidRefundKind, refund.Kind)
	}

	if err := requirePositive("refund amount", refund.Amount); err != nil {
		return nil, err
	}
	if err := requireNonNegative("driver share", refund.DriverShare); err != nil {
		return nil, err
	}
	if err := requireNonNegative("partner share", refund.PartnerShare); err != nil {
		return nil, err
	}

	company_share := refund.Amount.Sub(refund.DriverShare).Sub(refund.PartnerShare)
	if company_share.IsNegative() {
		return nil, fmt.Errorf("%w: driver and partner shares exceed the refund amount (%s)", models.ErrShareMismatch, refund.Amount.String())
	}

	shares := []Share{{Party: revenueOf(s.companyOr(refund.CompanyID)), Amount: company_share.Neg()}}
	if !refund.DriverShare.IsZero() {
		shares = append(shares, Share{Party: revenueOf(refund.DriverID), Amount: refund.DriverShare.Neg()})
	}
	if !refund.PartnerShare.IsZero() {
		shares = append(shares, Share{Party: revenueOf(refund.PartnerID), Amount: refund.PartnerShare.Neg()})
	}

	return s.CreateTransaction(ctx, &Intent{
		Description: fmt.Sprintf("Refund for %s order #%d", label, refund.OrderID),
		Category:    models.CategoryRefund,
		OrderID:     null.Int64From(refund.OrderID),
		Payer:       walletOf(refund.CustomerID),
		Total:       refund.Amount.Neg(),
		Shares:      shares,
	})
}
