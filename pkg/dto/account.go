// Package dto holds persistence-facing data transfer objects exchanged
// between services and repositories.
package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountRead is a read-optimized view of an account.
type AccountRead struct {
	ID             uint            `json:"id"`
	Phone          string          `json:"phone"`
	Name           string          `json:"name"`
	Surname        string          `json:"surname"`
	HashedPassword string          `json:"-"`
	Balance        decimal.Decimal `json:"balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// AccountCreate carries the data needed to insert a new account.
type AccountCreate struct {
	Phone    string
	Name     string
	Surname  string
	Password string
	Balance  decimal.Decimal
}

// AccountUpdate overwrites one or more account fields. Nil fields are left
// untouched.
type AccountUpdate struct {
	Phone    *string
	Name     *string
	Surname  *string
	Password *string
	Balance  *decimal.Decimal
}
