// Package account provides the business logic for account management,
// including the cascading delete of owned operations. All mutations run
// inside a single unit-of-work transaction; domain events are emitted only
// after the transaction commits.
package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/primebank/ledger/pkg/domain"
	acct "github.com/primebank/ledger/pkg/domain/account"
	"github.com/primebank/ledger/pkg/domain/events"
	"github.com/primebank/ledger/pkg/domain/operation"
	"github.com/primebank/ledger/pkg/dto"
	"github.com/primebank/ledger/pkg/eventbus"
	"github.com/primebank/ledger/pkg/repository"
	"github.com/primebank/ledger/pkg/utils"
	"github.com/shopspring/decimal"
)

// UpdateInput carries the full replacement field set for an account update.
// Every mutable field is overwritten, matching PUT semantics.
type UpdateInput struct {
	Phone    string
	Name     string
	Surname  string
	Password string
	Balance  decimal.Decimal
}

// Service implements the account manager.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.Bus
	logger *slog.Logger
}

// New creates an account Service.
func New(uow repository.UnitOfWork, bus eventbus.Bus, logger *slog.Logger) *Service {
	return &Service{
		uow:    uow,
		bus:    bus,
		logger: logger.With("service", "account"),
	}
}

// Create validates and persists a new account. It fails with
// domain.ErrInvalidPhoneNumber when the phone has fewer than ten digits and
// domain.ErrDuplicatePhoneNumber when the phone is already registered.
func (s *Service) Create(
	ctx context.Context,
	phone, name, surname, password string,
	balance decimal.Decimal,
) (created *dto.AccountRead, err error) {
	a, err := acct.New(phone, name, surname, password, balance)
	if err != nil {
		return nil, err
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		exists, err := repo.ExistsByPhone(ctx, a.Phone)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicatePhoneNumber
		}
		created, err = repo.Create(ctx, &dto.AccountCreate{
			Phone:    a.Phone,
			Name:     a.Name,
			Surname:  a.Surname,
			Password: hashed,
			Balance:  a.Balance,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("account created", "id", created.ID)
	s.bus.Emit(ctx, events.AccountCreated{ //nolint:errcheck
		ID:      created.ID,
		Name:    created.Name,
		Surname: created.Surname,
	})
	return created, nil
}

// Get retrieves an account by id. A missing account yields (nil, nil); the
// caller decides the error semantics.
func (s *Service) Get(ctx context.Context, id uint) (a *dto.AccountRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err = repo.Get(ctx, id)
		return err
	})
	return
}

// GetByPhone retrieves an account by its phone number. A missing account
// yields (nil, nil).
func (s *Service) GetByPhone(ctx context.Context, phone string) (a *dto.AccountRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err = repo.GetByPhone(ctx, phone)
		return err
	})
	return
}

// List retrieves all accounts.
func (s *Service) List(ctx context.Context) (accounts []*dto.AccountRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		accounts, err = repo.List(ctx)
		return err
	})
	return
}

// Authenticate resolves an account by phone and checks the password against
// the stored hash. A missing account yields (nil, nil); a wrong password
// fails with domain.ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, phone, password string) (*dto.AccountRead, error) {
	a, err := s.GetByPhone(ctx, phone)
	if err != nil || a == nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(password, a.HashedPassword) {
		return nil, domain.ErrInvalidCredentials
	}
	return a, nil
}

// UpdateByPhone overwrites all mutable fields of the account registered
// under phone. It fails with domain.ErrAccountNotFound when no account
// matches and domain.ErrInvalidPhoneNumber when the replacement phone is
// invalid.
func (s *Service) UpdateByPhone(
	ctx context.Context,
	phone string,
	input UpdateInput,
) (updated *dto.AccountRead, err error) {
	if err = acct.ValidatePhone(input.Phone); err != nil {
		return nil, err
	}
	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		existing, err := repo.GetByPhone(ctx, phone)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrAccountNotFound
		}
		if err := repo.Update(ctx, existing.ID, &dto.AccountUpdate{
			Phone:    &input.Phone,
			Name:     &input.Name,
			Surname:  &input.Surname,
			Password: &hashed,
			Balance:  &input.Balance,
		}); err != nil {
			return err
		}
		updated, err = repo.Get(ctx, existing.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("account updated", "id", updated.ID)
	s.bus.Emit(ctx, events.AccountUpdated{ID: updated.ID}) //nolint:errcheck
	return updated, nil
}

// Delete removes an account together with every operation it owns, in one
// transaction, so no operation can ever reference a deleted account. Each
// owned operation is reversed through the reconciler before removal, exactly
// as an individual operation delete would do. Returns false when the account
// does not exist.
func (s *Service) Delete(ctx context.Context, id uint) (deleted bool, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		operations, err := uow.OperationRepository()
		if err != nil {
			return err
		}
		read, err := accounts.Get(ctx, id)
		if err != nil {
			return err
		}
		if read == nil {
			return nil
		}
		owned, err := operations.ListByAccount(ctx, id)
		if err != nil {
			return err
		}
		a := acct.NewFromData(
			read.ID, read.Phone, read.Name, read.Surname,
			read.HashedPassword, read.Balance,
		)
		for _, op := range owned {
			typ, err := operation.ParseType(op.Type)
			if err != nil {
				return err
			}
			if err := a.Reverse(typ, op.Value); err != nil {
				return err
			}
			if err := operations.Delete(ctx, op.ID); err != nil {
				return err
			}
		}
		if len(owned) > 0 {
			if err := accounts.UpdateBalance(ctx, id, a.Balance); err != nil {
				return err
			}
		}
		if err := accounts.Delete(ctx, id); err != nil {
			return err
		}
		deleted = true
		return nil
	})
	if err != nil || !deleted {
		return false, err
	}
	s.logger.Info("account deleted", "id", id)
	s.bus.Emit(ctx, events.AccountDeleted{ID: id}) //nolint:errcheck
	return true, nil
}
