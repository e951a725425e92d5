// Package operation defines the data access contract for operation records.
package operation

import (
	"context"
	"time"

	"github.com/primebank/ledger/pkg/dto"
	"github.com/shopspring/decimal"
)

// Repository defines the interface for operation data access. Lookups return
// (nil, nil) when no record matches.
type Repository interface {
	// Create inserts a new operation and returns it with the generated id.
	Create(ctx context.Context, create *dto.OperationCreate) (*dto.OperationRead, error)

	// Get retrieves an operation by id.
	Get(ctx context.Context, id uint) (*dto.OperationRead, error)

	// List retrieves all operations.
	List(ctx context.Context) ([]*dto.OperationRead, error)

	// ListByAccount retrieves all operations owned by an account.
	ListByAccount(ctx context.Context, accountID uint) ([]*dto.OperationRead, error)

	// ListByAccountAndDate retrieves the operations of an account created at
	// the given instant.
	ListByAccountAndDate(ctx context.Context, accountID uint, date time.Time) ([]*dto.OperationRead, error)

	// FindByAttributes retrieves the operation matching all four attributes
	// exactly. When several match, the one with the lowest id wins.
	FindByAttributes(ctx context.Context, value decimal.Decimal, typ string, createdAt time.Time, accountID uint) (*dto.OperationRead, error)

	// Update overwrites the non-nil fields of an existing operation.
	Update(ctx context.Context, id uint, update *dto.OperationUpdate) error

	// Delete removes an operation by id.
	Delete(ctx context.Context, id uint) error
}
