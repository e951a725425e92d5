// Package repository defines the unit-of-work contract that binds all
// repository access to a single transaction boundary.
package repository

import (
	"context"
	"reflect"

	accountrepo "github.com/primebank/ledger/pkg/repository/account"
	operationrepo "github.com/primebank/ledger/pkg/repository/operation"
)

// UnitOfWork provides transaction boundaries and repository access in one
// abstraction. Keeping GetRepository on the UnitOfWork guarantees that every
// repository obtained inside Do shares the same DB session, so a
// reverse-then-apply sequence is atomic and a failed persist rolls the
// balance change back with it.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. fn receives a
	// UnitOfWork bound to that transaction; if fn returns an error the
	// transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// GetRepository returns a repository of the requested interface type,
	// bound to the current transaction/session.
	GetRepository(repoType reflect.Type) (any, error)

	// AccountRepository returns the account repository bound to the current
	// session.
	AccountRepository() (accountrepo.Repository, error)

	// OperationRepository returns the operation repository bound to the
	// current session.
	OperationRepository() (operationrepo.Repository, error)
}
