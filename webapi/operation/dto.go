package operation

import (
	"time"

	"github.com/primebank/ledger/pkg/dto"
	"github.com/shopspring/decimal"
)

// CreateOperationRequest is the payload for creating an operation. The type
// and value are validated by the operation manager so that invalid inputs
// surface as typed domain errors.
type CreateOperationRequest struct {
	AccountID uint            `json:"account_id" validate:"required"`
	Value     decimal.Decimal `json:"value"`
	Type      string          `json:"type" validate:"required"`
	CreatedAt time.Time       `json:"created_at"`
}

// UpdateOperationRequest is the payload for overwriting an operation. All
// fields are required: an update replaces the row, so an omitted value or
// created_at would overwrite the stored field with its zero value.
type UpdateOperationRequest struct {
	Value     decimal.Decimal `json:"value" validate:"required"`
	Type      string          `json:"type" validate:"required"`
	CreatedAt time.Time       `json:"created_at" validate:"required"`
}

// OperationResponse is the public view of an operation.
type OperationResponse struct {
	ID        uint            `json:"id"`
	Value     decimal.Decimal `json:"value"`
	Type      string          `json:"type"`
	CreatedAt time.Time       `json:"created_at"`
	AccountID uint            `json:"account_id"`
}

func toResponse(op *dto.OperationRead) *OperationResponse {
	return &OperationResponse{
		ID:        op.ID,
		Value:     op.Value,
		Type:      op.Type,
		CreatedAt: op.CreatedAt,
		AccountID: op.AccountID,
	}
}

func toResponses(ops []*dto.OperationRead) []*OperationResponse {
	out := make([]*OperationResponse, 0, len(ops))
	for _, op := range ops {
		out = append(out, toResponse(op))
	}
	return out
}
