// Package memuow provides an in-memory UnitOfWork with account and
// operation repositories for tests. Do takes a snapshot before running the
// given function and restores it when the function fails, mirroring the
// rollback semantics of the real transaction boundary.
package memuow

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/primebank/ledger/pkg/dto"
	"github.com/primebank/ledger/pkg/repository"
	accountrepo "github.com/primebank/ledger/pkg/repository/account"
	operationrepo "github.com/primebank/ledger/pkg/repository/operation"
	"github.com/shopspring/decimal"
)

// Store is an in-memory UnitOfWork implementation.
type Store struct {
	mu              sync.Mutex
	accounts        map[uint]dto.AccountRead
	operations      map[uint]dto.OperationRead
	nextAccountID   uint
	nextOperationID uint
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		accounts:        make(map[uint]dto.AccountRead),
		operations:      make(map[uint]dto.OperationRead),
		nextAccountID:   1,
		nextOperationID: 1,
	}
}

// Do runs fn against the store, restoring the pre-call state when fn fails.
func (s *Store) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapAccounts := make(map[uint]dto.AccountRead, len(s.accounts))
	for k, v := range s.accounts {
		snapAccounts[k] = v
	}
	snapOperations := make(map[uint]dto.OperationRead, len(s.operations))
	for k, v := range s.operations {
		snapOperations[k] = v
	}
	snapNextAccountID := s.nextAccountID
	snapNextOperationID := s.nextOperationID

	if err := fn(s); err != nil {
		s.accounts = snapAccounts
		s.operations = snapOperations
		s.nextAccountID = snapNextAccountID
		s.nextOperationID = snapNextOperationID
		return err
	}
	return nil
}

// GetRepository returns the repository matching the requested interface.
func (s *Store) GetRepository(repoType reflect.Type) (any, error) {
	switch repoType {
	case reflect.TypeOf((*accountrepo.Repository)(nil)).Elem():
		return &accountRepository{s: s}, nil
	case reflect.TypeOf((*operationrepo.Repository)(nil)).Elem():
		return &operationRepository{s: s}, nil
	default:
		return nil, fmt.Errorf("unsupported repository type: %v", repoType)
	}
}

// AccountRepository returns the in-memory account repository.
func (s *Store) AccountRepository() (accountrepo.Repository, error) {
	return &accountRepository{s: s}, nil
}

// OperationRepository returns the in-memory operation repository.
func (s *Store) OperationRepository() (operationrepo.Repository, error) {
	return &operationRepository{s: s}, nil
}

var _ repository.UnitOfWork = (*Store)(nil)

type accountRepository struct {
	s *Store
}

func (r *accountRepository) Create(ctx context.Context, create *dto.AccountCreate) (*dto.AccountRead, error) {
	now := time.Now().UTC()
	a := dto.AccountRead{
		ID:             r.s.nextAccountID,
		Phone:          create.Phone,
		Name:           create.Name,
		Surname:        create.Surname,
		HashedPassword: create.Password,
		Balance:        create.Balance,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	r.s.nextAccountID++
	r.s.accounts[a.ID] = a
	out := a
	return &out, nil
}

func (r *accountRepository) Get(ctx context.Context, id uint) (*dto.AccountRead, error) {
	a, ok := r.s.accounts[id]
	if !ok {
		return nil, nil
	}
	out := a
	return &out, nil
}

func (r *accountRepository) GetByPhone(ctx context.Context, phone string) (*dto.AccountRead, error) {
	for _, a := range r.s.accounts {
		if a.Phone == phone {
			out := a
			return &out, nil
		}
	}
	return nil, nil
}

func (r *accountRepository) List(ctx context.Context) ([]*dto.AccountRead, error) {
	ids := make([]uint, 0, len(r.s.accounts))
	for id := range r.s.accounts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*dto.AccountRead, 0, len(ids))
	for _, id := range ids {
		a := r.s.accounts[id]
		out = append(out, &a)
	}
	return out, nil
}

func (r *accountRepository) Update(ctx context.Context, id uint, update *dto.AccountUpdate) error {
	a, ok := r.s.accounts[id]
	if !ok {
		return nil
	}
	if update.Phone != nil {
		a.Phone = *update.Phone
	}
	if update.Name != nil {
		a.Name = *update.Name
	}
	if update.Surname != nil {
		a.Surname = *update.Surname
	}
	if update.Password != nil {
		a.HashedPassword = *update.Password
	}
	if update.Balance != nil {
		a.Balance = *update.Balance
	}
	a.UpdatedAt = time.Now().UTC()
	r.s.accounts[id] = a
	return nil
}

func (r *accountRepository) UpdateBalance(ctx context.Context, id uint, balance decimal.Decimal) error {
	a, ok := r.s.accounts[id]
	if !ok {
		return nil
	}
	a.Balance = balance
	a.UpdatedAt = time.Now().UTC()
	r.s.accounts[id] = a
	return nil
}

func (r *accountRepository) Delete(ctx context.Context, id uint) error {
	delete(r.s.accounts, id)
	return nil
}

func (r *accountRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	for _, a := range r.s.accounts {
		if a.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

type operationRepository struct {
	s *Store
}

func (r *operationRepository) Create(ctx context.Context, create *dto.OperationCreate) (*dto.OperationRead, error) {
	op := dto.OperationRead{
		ID:        r.s.nextOperationID,
		Value:     create.Value,
		Type:      create.Type,
		CreatedAt: create.CreatedAt,
		AccountID: create.AccountID,
	}
	r.s.nextOperationID++
	r.s.operations[op.ID] = op
	out := op
	return &out, nil
}

func (r *operationRepository) Get(ctx context.Context, id uint) (*dto.OperationRead, error) {
	op, ok := r.s.operations[id]
	if !ok {
		return nil, nil
	}
	out := op
	return &out, nil
}

func (r *operationRepository) List(ctx context.Context) ([]*dto.OperationRead, error) {
	return r.collect(func(dto.OperationRead) bool { return true }), nil
}

func (r *operationRepository) ListByAccount(ctx context.Context, accountID uint) ([]*dto.OperationRead, error) {
	return r.collect(func(op dto.OperationRead) bool {
		return op.AccountID == accountID
	}), nil
}

func (r *operationRepository) ListByAccountAndDate(ctx context.Context, accountID uint, date time.Time) ([]*dto.OperationRead, error) {
	return r.collect(func(op dto.OperationRead) bool {
		return op.AccountID == accountID && op.CreatedAt.Equal(date)
	}), nil
}

func (r *operationRepository) FindByAttributes(
	ctx context.Context,
	value decimal.Decimal,
	typ string,
	createdAt time.Time,
	accountID uint,
) (*dto.OperationRead, error) {
	matches := r.collect(func(op dto.OperationRead) bool {
		return op.AccountID == accountID &&
			op.Type == typ &&
			op.Value.Equal(value) &&
			op.CreatedAt.Equal(createdAt)
	})
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func (r *operationRepository) Update(ctx context.Context, id uint, update *dto.OperationUpdate) error {
	op, ok := r.s.operations[id]
	if !ok {
		return nil
	}
	if update.Value != nil {
		op.Value = *update.Value
	}
	if update.Type != nil {
		op.Type = *update.Type
	}
	if update.CreatedAt != nil {
		op.CreatedAt = *update.CreatedAt
	}
	r.s.operations[id] = op
	return nil
}

func (r *operationRepository) Delete(ctx context.Context, id uint) error {
	delete(r.s.operations, id)
	return nil
}

// collect returns matching operations ordered by ascending id.
func (r *operationRepository) collect(match func(dto.OperationRead) bool) []*dto.OperationRead {
	ids := make([]uint, 0, len(r.s.operations))
	for id, op := range r.s.operations {
		if match(op) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*dto.OperationRead, 0, len(ids))
	for _, id := range ids {
		op := r.s.operations[id]
		out = append(out, &op)
	}
	return out
}
