package models

import (
	"fmt"
	"strings"
	"time"
)

type ContractorType string

const (
	ContractorCustomer ContractorType = "customer"
	ContractorDriver   ContractorType = "driver"
	ContractorPartner  ContractorType = "partner"
	ContractorCompany  ContractorType = "company"
)

var openingAccountKinds = map[ContractorType][]AccountKind{
	ContractorCustomer: {KindWallet},
	ContractorDriver:   {KindRevenue},
	ContractorPartner:  {KindRevenue},
	ContractorCompany:  {KindRevenue, KindPayable},
}

func ParseContractorType(value string) (ContractorType, error) {
	t := ContractorType(value)
	if _, ok := openingAccountKinds[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidContractorType, value)
	}

	return t, nil
}

// OpeningAccountKinds lists the accounts a party of this type gets when onboarded.
func (t ContractorType) OpeningAccountKinds() []AccountKind {
	return openingAccountKinds[t]
}

type Contractor struct {
	ID        int64          `json:"id" gorm:"primaryKey"`
	FullName  string         `json:"full_name" gorm:"type:varchar(255);not null"`
	Type      ContractorType `json:"type" gorm:"type:varchar(50);not null;index"`
	Accounts  []*Account     `json:"accounts" gorm:"foreignKey:OwnerID"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func NewContractor(full_name string, contractor_type ContractorType) (*Contractor, error) {
	if len(strings.TrimSpace(full_name)) == 0 {
		return nil, fmt.Errorf("%w: full name cannot be empty", ErrInvalidDescription)
	}

	if _, ok := openingAccountKinds[contractor_type]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidContractorType, contractor_type)
	}

	return &Contractor{
		FullName:  full_name,
		Type:      contractor_type,
		Accounts:  make([]*Account, 0),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// OpenAccounts builds, but does not persist, the contractor's opening accounts.
// The contractor must already have an id.
func (c *Contractor) OpenAccounts() ([]*Account, error) {
	accounts := make([]*Account, 0)
	for _, kind := range c.Type.OpeningAccountKinds() {
		account, err := NewAccount(c.ID, kind)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	c.Accounts = append(c.Accounts, accounts...)
	return accounts, nil
}

func (c *Contractor) GetAccount(kind AccountKind) (*Account, error) {
	for _, account := range c.Accounts {
		if account.Kind == kind {
			return account, nil
		}
	}

	return nil, &AccountNotFoundError{OwnerID: c.ID, Kind: kind}
}
