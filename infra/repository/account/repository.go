// Package account implements the account repository on gorm/postgres.
package account

import (
	"context"
	"errors"

	"github.com/primebank/ledger/pkg/dto"
	accountrepo "github.com/primebank/ledger/pkg/repository/account"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a gorm-backed account repository bound to db.
func New(db *gorm.DB) accountrepo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	create *dto.AccountCreate,
) (*dto.AccountRead, error) {
	a := &Account{
		Phone:    create.Phone,
		Name:     create.Name,
		Surname:  create.Surname,
		Password: create.Password,
		Balance:  create.Balance,
	}
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	return mapModelToDTO(a), nil
}

func (r *repository) Get(ctx context.Context, id uint) (*dto.AccountRead, error) {
	var a Account
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&a), nil
}

func (r *repository) GetByPhone(ctx context.Context, phone string) (*dto.AccountRead, error) {
	var a Account
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&a), nil
}

func (r *repository) List(ctx context.Context) ([]*dto.AccountRead, error) {
	var accounts []Account
	if err := r.db.WithContext(ctx).Order("id").Find(&accounts).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.AccountRead, 0, len(accounts))
	for i := range accounts {
		result = append(result, mapModelToDTO(&accounts[i]))
	}
	return result, nil
}

func (r *repository) Update(
	ctx context.Context,
	id uint,
	au *dto.AccountUpdate,
) error {
	updates := make(map[string]interface{})
	if au.Phone != nil {
		updates["phone"] = *au.Phone
	}
	if au.Name != nil {
		updates["name"] = *au.Name
	}
	if au.Surname != nil {
		updates["surname"] = *au.Surname
	}
	if au.Password != nil {
		updates["password"] = *au.Password
	}
	if au.Balance != nil {
		updates["balance"] = *au.Balance
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&Account{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) UpdateBalance(
	ctx context.Context,
	id uint,
	balance decimal.Decimal,
) error {
	return r.db.WithContext(ctx).Model(&Account{}).
		Where("id = ?", id).
		Update("balance", balance).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Account{}, "id = ?", id).Error
}

func (r *repository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Account{}).
		Where("phone = ?", phone).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func mapModelToDTO(a *Account) *dto.AccountRead {
	return &dto.AccountRead{
		ID:             a.ID,
		Phone:          a.Phone,
		Name:           a.Name,
		Surname:        a.Surname,
		HashedPassword: a.Password,
		Balance:        a.Balance,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

var _ accountrepo.Repository = (*repository)(nil)
