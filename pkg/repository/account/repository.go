// Package account defines the data access contract for account records.
package account

import (
	"context"

	"github.com/primebank/ledger/pkg/dto"
	"github.com/shopspring/decimal"
)

// Repository defines the interface for account data access. Lookups return
// (nil, nil) when no record matches; absence is a sentinel, not an error.
type Repository interface {
	// Create inserts a new account and returns it with the generated id.
	Create(ctx context.Context, create *dto.AccountCreate) (*dto.AccountRead, error)

	// Get retrieves an account by id.
	Get(ctx context.Context, id uint) (*dto.AccountRead, error)

	// GetByPhone retrieves an account by its unique phone number.
	GetByPhone(ctx context.Context, phone string) (*dto.AccountRead, error)

	// List retrieves all accounts.
	List(ctx context.Context) ([]*dto.AccountRead, error)

	// Update overwrites the non-nil fields of an existing account.
	Update(ctx context.Context, id uint, update *dto.AccountUpdate) error

	// UpdateBalance persists a reconciled balance.
	UpdateBalance(ctx context.Context, id uint, balance decimal.Decimal) error

	// Delete removes an account by id.
	Delete(ctx context.Context, id uint) error

	// ExistsByPhone reports whether an account with the phone exists.
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
}
