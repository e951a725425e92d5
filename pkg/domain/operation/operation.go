// Package operation defines the Operation entity and its type enum. The
// signed contribution of an operation to a balance is computed here and
// nowhere else.
package operation

import (
	"time"

	"github.com/primebank/ledger/pkg/domain"
	"github.com/shopspring/decimal"
)

// Type enumerates the kinds of balance-affecting operations.
type Type string

const (
	// TypePayment decreases the owning account's balance.
	TypePayment Type = "payment"
	// TypeWage increases the owning account's balance.
	TypeWage Type = "wage"
)

// ParseType validates a raw string against the known operation types.
func ParseType(raw string) (Type, error) {
	switch Type(raw) {
	case TypePayment:
		return TypePayment, nil
	case TypeWage:
		return TypeWage, nil
	default:
		return "", domain.ErrInvalidOperationType
	}
}

// String returns the wire representation of the type.
func (t Type) String() string { return string(t) }

// Delta returns the signed balance contribution of an operation of this type:
// wage = +value, payment = -value. Unknown types fail without producing a
// delta, so a caller can never move a balance by an invalid operation.
func (t Type) Delta(value decimal.Decimal) (decimal.Decimal, error) {
	switch t {
	case TypeWage:
		return value, nil
	case TypePayment:
		return value.Neg(), nil
	default:
		return decimal.Zero, domain.ErrInvalidOperationType
	}
}

// Operation represents a single balance-affecting entry in the ledger.
// An operation always belongs to exactly one account.
type Operation struct {
	ID        uint            `json:"id"`
	Value     decimal.Decimal `json:"value"`
	Type      Type            `json:"type"`
	CreatedAt time.Time       `json:"created_at"`
	AccountID uint            `json:"account_id"`
}

// New validates and builds an Operation that is not yet persisted.
func New(accountID uint, typ Type, value decimal.Decimal, createdAt time.Time) (*Operation, error) {
	if _, err := ParseType(string(typ)); err != nil {
		return nil, err
	}
	if value.IsNegative() {
		return nil, domain.ErrNegativeValue
	}
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return &Operation{
		Value:     value,
		Type:      typ,
		CreatedAt: createdAt,
		AccountID: accountID,
	}, nil
}
