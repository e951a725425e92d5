package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationRead is a read-optimized view of an operation.
type OperationRead struct {
	ID        uint            `json:"id"`
	Value     decimal.Decimal `json:"value"`
	Type      string          `json:"type"`
	CreatedAt time.Time       `json:"created_at"`
	AccountID uint            `json:"account_id"`
}

// OperationCreate carries the data needed to insert a new operation.
type OperationCreate struct {
	Value     decimal.Decimal
	Type      string
	CreatedAt time.Time
	AccountID uint
}

// OperationUpdate overwrites one or more operation fields. Nil fields are
// left untouched.
type OperationUpdate struct {
	Value     *decimal.Decimal
	Type      *string
	CreatedAt *time.Time
}
