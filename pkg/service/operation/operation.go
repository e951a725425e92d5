// Package operation provides the business logic for balance-affecting
// operations. Every mutation goes through the balance reconciler and runs
// inside a single unit-of-work transaction: the balance update and the
// operation row change commit or roll back together, so the stored balance
// can never drift from the operation history. Domain events are emitted only
// after the transaction commits.
package operation

import (
	"context"
	"log/slog"
	"time"

	"github.com/primebank/ledger/pkg/domain"
	acct "github.com/primebank/ledger/pkg/domain/account"
	"github.com/primebank/ledger/pkg/domain/events"
	oper "github.com/primebank/ledger/pkg/domain/operation"
	"github.com/primebank/ledger/pkg/dto"
	"github.com/primebank/ledger/pkg/eventbus"
	"github.com/primebank/ledger/pkg/repository"
	"github.com/shopspring/decimal"
)

// Service implements the operation manager.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.Bus
	logger *slog.Logger
}

// New creates an operation Service.
func New(uow repository.UnitOfWork, bus eventbus.Bus, logger *slog.Logger) *Service {
	return &Service{
		uow:    uow,
		bus:    bus,
		logger: logger.With("service", "operation"),
	}
}

// Create persists a new operation and applies its balance delta to the
// owning account within the same transaction. It fails with
// domain.ErrAccountNotFound, domain.ErrInvalidOperationType or
// domain.ErrNegativeValue; on any failure the balance is unchanged.
func (s *Service) Create(
	ctx context.Context,
	accountID uint,
	typ string,
	value decimal.Decimal,
	createdAt time.Time,
) (created *dto.OperationRead, err error) {
	parsed, err := oper.ParseType(typ)
	if err != nil {
		return nil, err
	}
	op, err := oper.New(accountID, parsed, value, createdAt)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		operations, err := uow.OperationRepository()
		if err != nil {
			return err
		}
		if _, err := s.applyDelta(ctx, accounts, accountID, func(a *acct.Account) error {
			return a.Apply(op.Type, op.Value)
		}); err != nil {
			return err
		}
		created, err = operations.Create(ctx, &dto.OperationCreate{
			Value:     op.Value,
			Type:      op.Type.String(),
			CreatedAt: op.CreatedAt,
			AccountID: op.AccountID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("operation created",
		"id", created.ID, "account_id", created.AccountID, "type", created.Type)
	s.bus.Emit(ctx, events.OperationCreated{ //nolint:errcheck
		ID:        created.ID,
		AccountID: created.AccountID,
	})
	return created, nil
}

// Update overwrites an operation and reconciles the owning balance: the old
// (type, value) is reversed, the fields are overwritten, then the new
// (type, value) is applied, all in one transaction. The new type is
// validated before anything is reversed, so an invalid update can never
// leave a dangling reversal.
func (s *Service) Update(
	ctx context.Context,
	id uint,
	typ string,
	value decimal.Decimal,
	createdAt time.Time,
) (updated *dto.OperationRead, err error) {
	newType, err := oper.ParseType(typ)
	if err != nil {
		return nil, err
	}
	if value.IsNegative() {
		return nil, domain.ErrNegativeValue
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		operations, err := uow.OperationRepository()
		if err != nil {
			return err
		}
		existing, err := operations.Get(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrOperationNotFound
		}
		oldType, err := oper.ParseType(existing.Type)
		if err != nil {
			return err
		}
		if _, err := s.applyDelta(ctx, accounts, existing.AccountID, func(a *acct.Account) error {
			if err := a.Reverse(oldType, existing.Value); err != nil {
				return err
			}
			return a.Apply(newType, value)
		}); err != nil {
			return err
		}
		newTypeStr := newType.String()
		if err := operations.Update(ctx, id, &dto.OperationUpdate{
			Value:     &value,
			Type:      &newTypeStr,
			CreatedAt: &createdAt,
		}); err != nil {
			return err
		}
		updated, err = operations.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("operation updated", "id", updated.ID, "account_id", updated.AccountID)
	s.bus.Emit(ctx, events.OperationUpdated{ //nolint:errcheck
		ID:        updated.ID,
		AccountID: updated.AccountID,
	})
	return updated, nil
}

// Delete reverses the operation's balance effect and removes the record in
// one transaction. Returns false when the operation does not exist.
func (s *Service) Delete(ctx context.Context, id uint) (bool, error) {
	var removed *dto.OperationRead
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		operations, err := uow.OperationRepository()
		if err != nil {
			return err
		}
		existing, err := operations.Get(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return nil
		}
		return s.remove(ctx, uow, existing, &removed)
	})
	if err != nil || removed == nil {
		return false, err
	}
	s.logger.Info("operation deleted", "id", removed.ID, "account_id", removed.AccountID)
	s.bus.Emit(ctx, events.OperationDeleted{ //nolint:errcheck
		ID:        removed.ID,
		AccountID: removed.AccountID,
	})
	return true, nil
}

// DeleteByAttributes behaves like Delete but locates the operation by exact
// (value, type, createdAt, accountID) match. When several operations share
// the same attributes the one with the lowest id is removed.
func (s *Service) DeleteByAttributes(
	ctx context.Context,
	value decimal.Decimal,
	typ string,
	createdAt time.Time,
	accountID uint,
) (bool, error) {
	var removed *dto.OperationRead
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		operations, err := uow.OperationRepository()
		if err != nil {
			return err
		}
		existing, err := operations.FindByAttributes(ctx, value, typ, createdAt, accountID)
		if err != nil {
			return err
		}
		if existing == nil {
			return nil
		}
		return s.remove(ctx, uow, existing, &removed)
	})
	if err != nil || removed == nil {
		return false, err
	}
	s.logger.Info("operation deleted by attributes",
		"id", removed.ID, "account_id", removed.AccountID)
	s.bus.Emit(ctx, events.OperationDeleted{ //nolint:errcheck
		ID:        removed.ID,
		AccountID: removed.AccountID,
	})
	return true, nil
}

// List retrieves all operations.
func (s *Service) List(ctx context.Context) (ops []*dto.OperationRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		operations, err := uow.OperationRepository()
		if err != nil {
			return err
		}
		ops, err = operations.List(ctx)
		return err
	})
	return
}

// ListByAccount retrieves the operations owned by an account.
func (s *Service) ListByAccount(ctx context.Context, accountID uint) (ops []*dto.OperationRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		operations, err := uow.OperationRepository()
		if err != nil {
			return err
		}
		ops, err = operations.ListByAccount(ctx, accountID)
		return err
	})
	return
}

// ListByAccountAndDate retrieves the operations of an account created at the
// given instant.
func (s *Service) ListByAccountAndDate(
	ctx context.Context,
	accountID uint,
	date time.Time,
) (ops []*dto.OperationRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		operations, err := uow.OperationRepository()
		if err != nil {
			return err
		}
		ops, err = operations.ListByAccountAndDate(ctx, accountID, date)
		return err
	})
	return
}

// remove reverses the balance effect of existing and deletes the record,
// using repositories bound to the caller's transaction.
func (s *Service) remove(
	ctx context.Context,
	uow repository.UnitOfWork,
	existing *dto.OperationRead,
	removed **dto.OperationRead,
) error {
	accounts, err := uow.AccountRepository()
	if err != nil {
		return err
	}
	operations, err := uow.OperationRepository()
	if err != nil {
		return err
	}
	typ, err := oper.ParseType(existing.Type)
	if err != nil {
		return err
	}
	if _, err := s.applyDelta(ctx, accounts, existing.AccountID, func(a *acct.Account) error {
		return a.Reverse(typ, existing.Value)
	}); err != nil {
		return err
	}
	if err := operations.Delete(ctx, existing.ID); err != nil {
		return err
	}
	*removed = existing
	return nil
}

// applyDelta loads the owning account, runs the reconciler mutation on the
// domain entity and persists the resulting balance.
func (s *Service) applyDelta(
	ctx context.Context,
	accounts accountRepository,
	accountID uint,
	mutate func(a *acct.Account) error,
) (*acct.Account, error) {
	read, err := accounts.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if read == nil {
		return nil, domain.ErrAccountNotFound
	}
	a := acct.NewFromData(
		read.ID, read.Phone, read.Name, read.Surname,
		read.HashedPassword, read.Balance,
	)
	if err := mutate(a); err != nil {
		return nil, err
	}
	if err := accounts.UpdateBalance(ctx, a.ID, a.Balance); err != nil {
		return nil, err
	}
	return a, nil
}

// accountRepository is the slice of the account repository applyDelta needs.
type accountRepository interface {
	Get(ctx context.Context, id uint) (*dto.AccountRead, error)
	UpdateBalance(ctx context.Context, id uint, balance decimal.Decimal) error
}
