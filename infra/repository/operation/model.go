package operation

import (
	"time"

	accountmodel "github.com/primebank/ledger/infra/repository/account"
	"github.com/shopspring/decimal"
)

// Operation represents an operation record in the database. The foreign key
// to accounts is RESTRICT: the database itself refuses to orphan an
// operation.
type Operation struct {
	ID        uint            `gorm:"primaryKey"`
	Value     decimal.Decimal `gorm:"type:numeric(20,4);not null;index"`
	Type      string          `gorm:"size:16;not null;index"`
	CreatedAt time.Time       `gorm:"index"`
	AccountID uint            `gorm:"not null;index"`

	Account accountmodel.Account `gorm:"foreignKey:AccountID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the table name for the Operation model.
func (Operation) TableName() string {
	return "operations"
}
