package account

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents an account record in the database.
type Account struct {
	ID        uint            `gorm:"primaryKey"`
	Phone     string          `gorm:"uniqueIndex;not null;size:32"`
	Name      string          `gorm:"size:255;index"`
	Surname   string          `gorm:"size:255;index"`
	Password  string          `gorm:"not null"`
	Balance   decimal.Decimal `gorm:"type:numeric(20,4);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}
