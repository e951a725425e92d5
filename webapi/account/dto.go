package account

import (
	"time"

	"github.com/primebank/ledger/pkg/dto"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest is the payload for creating an account.
type CreateAccountRequest struct {
	Phone    string          `json:"phone" validate:"required,numeric"`
	Name     string          `json:"name" validate:"required"`
	Surname  string          `json:"surname" validate:"required"`
	Password string          `json:"password" validate:"required,min=8"`
	Balance  decimal.Decimal `json:"balance"`
}

// UpdateAccountRequest is the payload for overwriting an account's mutable
// fields.
type UpdateAccountRequest struct {
	Phone    string          `json:"phone" validate:"required,numeric"`
	Name     string          `json:"name" validate:"required"`
	Surname  string          `json:"surname" validate:"required"`
	Password string          `json:"password" validate:"required,min=8"`
	Balance  decimal.Decimal `json:"balance"`
}

// AccountResponse is the public view of an account. The stored credential is
// never exposed.
type AccountResponse struct {
	ID      uint            `json:"id"`
	Phone   string          `json:"phone"`
	Name    string          `json:"name"`
	Surname string          `json:"surname"`
	Balance decimal.Decimal `json:"balance"`
	Created time.Time       `json:"created_at"`
}

func toResponse(a *dto.AccountRead) *AccountResponse {
	return &AccountResponse{
		ID:      a.ID,
		Phone:   a.Phone,
		Name:    a.Name,
		Surname: a.Surname,
		Balance: a.Balance,
		Created: a.CreatedAt,
	}
}

func toResponses(accounts []*dto.AccountRead) []*AccountResponse {
	out := make([]*AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toResponse(a))
	}
	return out
}
