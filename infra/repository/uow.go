// Package repository implements the gorm-backed unit of work.
package repository

import (
	"fmt"
	"reflect"

	"context"

	accountinfra "github.com/primebank/ledger/infra/repository/account"
	operationinfra "github.com/primebank/ledger/infra/repository/operation"
	"github.com/primebank/ledger/pkg/repository"
	accountrepo "github.com/primebank/ledger/pkg/repository/account"
	operationrepo "github.com/primebank/ledger/pkg/repository/operation"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one
// abstraction. Repositories obtained through a UoW inside Do are bound to
// the running transaction, so every balance update commits or rolls back
// together with the operation row it belongs to.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[reflect.Type]func(*gorm.DB) any
}

// NewUoW creates a UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[reflect.Type]func(*gorm.DB) any{
			reflect.TypeOf((*accountrepo.Repository)(nil)).Elem(): func(db *gorm.DB) any {
				return accountinfra.New(db)
			},
			reflect.TypeOf((*operationrepo.Repository)(nil)).Elem(): func(db *gorm.DB) any {
				return operationinfra.New(db)
			},
		},
	}
}

// Do runs fn in a transaction boundary, providing a UoW bound to it.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry})
	})
}

// GetRepository provides type-safe access to repositories using the
// transaction session when inside Do, or the root session otherwise.
func (u *UoW) GetRepository(repoType reflect.Type) (any, error) {
	constructor, ok := u.repoRegistry[repoType]
	if !ok {
		return nil, fmt.Errorf("unsupported repository type: %v", repoType)
	}
	return constructor(u.session()), nil
}

// AccountRepository returns the account repository bound to the current
// session.
func (u *UoW) AccountRepository() (accountrepo.Repository, error) {
	repoAny, err := u.GetRepository(reflect.TypeOf((*accountrepo.Repository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	repo, ok := repoAny.(accountrepo.Repository)
	if !ok {
		return nil, fmt.Errorf("unexpected repository type %T", repoAny)
	}
	return repo, nil
}

// OperationRepository returns the operation repository bound to the current
// session.
func (u *UoW) OperationRepository() (operationrepo.Repository, error) {
	repoAny, err := u.GetRepository(reflect.TypeOf((*operationrepo.Repository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	repo, ok := repoAny.(operationrepo.Repository)
	if !ok {
		return nil, fmt.Errorf("unexpected repository type %T", repoAny)
	}
	return repo, nil
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

var _ repository.UnitOfWork = (*UoW)(nil)
