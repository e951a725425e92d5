// Package account defines the Account entity and the balance reconciler:
// Apply and Reverse are the only two mutators of an account balance in the
// whole codebase. They are exact inverses, which is what keeps the stored
// balance equal to the sum of the account's operations across arbitrary
// create/update/delete sequences.
package account

import (
	"github.com/primebank/ledger/pkg/domain"
	"github.com/primebank/ledger/pkg/domain/operation"
	"github.com/shopspring/decimal"
)

// MinPhoneDigits is the minimum number of digits a phone number must have.
const MinPhoneDigits = 10

// Account represents a user of the ledger. The password is an opaque
// credential stored hashed; it is not a security boundary.
type Account struct {
	ID       uint            `json:"id"`
	Phone    string          `json:"phone"`
	Name     string          `json:"name"`
	Surname  string          `json:"surname"`
	Password string          `json:"-"`
	Balance  decimal.Decimal `json:"balance"`
}

// ValidatePhone checks that a phone number consists of digits only and has
// at least MinPhoneDigits of them.
func ValidatePhone(phone string) error {
	if len(phone) < MinPhoneDigits {
		return domain.ErrInvalidPhoneNumber
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return domain.ErrInvalidPhoneNumber
		}
	}
	return nil
}

// New validates and builds an Account that is not yet persisted.
func New(phone, name, surname, password string, balance decimal.Decimal) (*Account, error) {
	if err := ValidatePhone(phone); err != nil {
		return nil, err
	}
	return &Account{
		Phone:    phone,
		Name:     name,
		Surname:  surname,
		Password: password,
		Balance:  balance,
	}, nil
}

// NewFromData rebuilds an Account from stored data (DB hydration).
func NewFromData(id uint, phone, name, surname, password string, balance decimal.Decimal) *Account {
	return &Account{
		ID:       id,
		Phone:    phone,
		Name:     name,
		Surname:  surname,
		Password: password,
		Balance:  balance,
	}
}

// Apply adds the signed contribution of an operation to the balance.
// On an invalid type the balance is left untouched.
func (a *Account) Apply(typ operation.Type, value decimal.Decimal) error {
	delta, err := typ.Delta(value)
	if err != nil {
		return err
	}
	a.Balance = a.Balance.Add(delta)
	return nil
}

// Reverse undoes the contribution of an operation. Reverse(t, v) after
// Apply(t, v) restores the balance exactly.
func (a *Account) Reverse(typ operation.Type, value decimal.Decimal) error {
	delta, err := typ.Delta(value)
	if err != nil {
		return err
	}
	a.Balance = a.Balance.Sub(delta)
	return nil
}
