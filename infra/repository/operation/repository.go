// Package operation implements the operation repository on gorm/postgres.
package operation

import (
	"context"
	"errors"
	"time"

	"github.com/primebank/ledger/pkg/dto"
	operationrepo "github.com/primebank/ledger/pkg/repository/operation"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a gorm-backed operation repository bound to db.
func New(db *gorm.DB) operationrepo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	create *dto.OperationCreate,
) (*dto.OperationRead, error) {
	op := &Operation{
		Value:     create.Value,
		Type:      create.Type,
		CreatedAt: create.CreatedAt,
		AccountID: create.AccountID,
	}
	if err := r.db.WithContext(ctx).Create(op).Error; err != nil {
		return nil, err
	}
	return mapModelToDTO(op), nil
}

func (r *repository) Get(ctx context.Context, id uint) (*dto.OperationRead, error) {
	var op Operation
	if err := r.db.WithContext(ctx).First(&op, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&op), nil
}

func (r *repository) List(ctx context.Context) ([]*dto.OperationRead, error) {
	var ops []Operation
	if err := r.db.WithContext(ctx).Order("id").Find(&ops).Error; err != nil {
		return nil, err
	}
	return mapModelsToDTOs(ops), nil
}

func (r *repository) ListByAccount(
	ctx context.Context,
	accountID uint,
) ([]*dto.OperationRead, error) {
	var ops []Operation
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("id").
		Find(&ops).Error; err != nil {
		return nil, err
	}
	return mapModelsToDTOs(ops), nil
}

func (r *repository) ListByAccountAndDate(
	ctx context.Context,
	accountID uint,
	date time.Time,
) ([]*dto.OperationRead, error) {
	var ops []Operation
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND created_at = ?", accountID, date).
		Order("id").
		Find(&ops).Error; err != nil {
		return nil, err
	}
	return mapModelsToDTOs(ops), nil
}

// FindByAttributes resolves ties deterministically: lowest id wins.
func (r *repository) FindByAttributes(
	ctx context.Context,
	value decimal.Decimal,
	typ string,
	createdAt time.Time,
	accountID uint,
) (*dto.OperationRead, error) {
	var op Operation
	if err := r.db.WithContext(ctx).
		Where("value = ? AND type = ? AND created_at = ? AND account_id = ?",
			value, typ, createdAt, accountID).
		Order("id").
		First(&op).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&op), nil
}

func (r *repository) Update(
	ctx context.Context,
	id uint,
	ou *dto.OperationUpdate,
) error {
	updates := make(map[string]interface{})
	if ou.Value != nil {
		updates["value"] = *ou.Value
	}
	if ou.Type != nil {
		updates["type"] = *ou.Type
	}
	if ou.CreatedAt != nil {
		updates["created_at"] = *ou.CreatedAt
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&Operation{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Operation{}, "id = ?", id).Error
}

func mapModelToDTO(op *Operation) *dto.OperationRead {
	return &dto.OperationRead{
		ID:        op.ID,
		Value:     op.Value,
		Type:      op.Type,
		CreatedAt: op.CreatedAt,
		AccountID: op.AccountID,
	}
}

func mapModelsToDTOs(ops []Operation) []*dto.OperationRead {
	result := make([]*dto.OperationRead, 0, len(ops))
	for i := range ops {
		result = append(result, mapModelToDTO(&ops[i]))
	}
	return result
}

var _ operationrepo.Repository = (*repository)(nil)
