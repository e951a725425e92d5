// Package account exposes the account management endpoints.
package account

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	accountsvc "github.com/primebank/ledger/pkg/service/account"
	"github.com/primebank/ledger/webapi/common"
)

// Routes registers the account endpoints.
func Routes(app *fiber.App, svc *accountsvc.Service) {
	app.Post("/account", CreateAccount(svc))
	app.Get("/account", ListAccounts(svc))
	app.Get("/account/id/:id", GetAccount(svc))
	app.Get("/account/phone/:phone", GetAccountByPhone(svc))
	app.Put("/account/phone/:phone", UpdateAccountByPhone(svc))
	app.Delete("/account/:id", DeleteAccount(svc))
}

// CreateAccount creates a new account.
func CreateAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateAccountRequest](c)
		if input == nil {
			return err
		}
		created, err := svc.Create(
			c.Context(),
			input.Phone, input.Name, input.Surname, input.Password,
			input.Balance,
		)
		if err != nil {
			return common.DomainErrorResponseJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Created account", toResponse(created))
	}
}

// ListAccounts returns all accounts.
func ListAccounts(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accounts, err := svc.List(c.Context())
		if err != nil {
			return common.DomainErrorResponseJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts found", toResponses(accounts))
	}
}

// GetAccount retrieves an account by id.
func GetAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", err.Error())
		}
		a, err := svc.Get(c.Context(), id)
		if err != nil {
			return common.DomainErrorResponseJSON(c, err)
		}
		if a == nil {
			return common.ErrorResponseJSON(c, fiber.StatusNotFound, "Account not found", nil)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account found", toResponse(a))
	}
}

// GetAccountByPhone retrieves an account by phone number, checking the
// password passed as a query parameter against the stored credential.
func GetAccountByPhone(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		password := c.Query("password")
		a, err := svc.Authenticate(c.Context(), c.Params("phone"), password)
		if err != nil {
			return common.DomainErrorResponseJSON(c, err)
		}
		if a == nil {
			return common.ErrorResponseJSON(c, fiber.StatusNotFound, "Account not found", nil)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account found", toResponse(a))
	}
}

// UpdateAccountByPhone overwrites all mutable fields of the account
// registered under the phone path parameter.
func UpdateAccountByPhone(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UpdateAccountRequest](c)
		if input == nil {
			return err
		}
		updated, err := svc.UpdateByPhone(c.Context(), c.Params("phone"), accountsvc.UpdateInput{
			Phone:    input.Phone,
			Name:     input.Name,
			Surname:  input.Surname,
			Password: input.Password,
			Balance:  input.Balance,
		})
		if err != nil {
			return common.DomainErrorResponseJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account updated", toResponse(updated))
	}
}

// DeleteAccount removes an account and, in the same transaction, every
// operation it owns.
func DeleteAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", err.Error())
		}
		deleted, err := svc.Delete(c.Context(), id)
		if err != nil {
			log.Errorf("Failed to delete account %d: %v", id, err)
			return common.DomainErrorResponseJSON(c, err)
		}
		if !deleted {
			return common.ErrorResponseJSON(c, fiber.StatusNotFound, "Account not found", nil)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account deleted", nil)
	}
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
