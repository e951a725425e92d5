// Package operation exposes the operation (payment/wage) endpoints.
package operation

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	operationsvc "github.com/primebank/ledger/pkg/service/operation"
	"github.com/primebank/ledger/webapi/common"
	"github.com/shopspring/decimal"
)

// Routes registers the operation endpoints.
func Routes(app *fiber.App, svc *operationsvc.Service) {
	app.Post("/operation", CreateOperation(svc))
	app.Get("/operation", ListOperations(svc))
	app.Get("/operation/account/:id", ListOperationsByAccount(svc))
	app.Get("/operation/date/:id", ListOperationsByDate(svc))
	app.Patch("/operation/:id", UpdateOperation(svc))
	app.Delete("/operation/params/:id", DeleteOperationByParams(svc))
	app.Delete("/operation/:id", DeleteOperation(svc))
}

// CreateOperation creates an operation and applies its balance delta.
func CreateOperation(svc *operationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateOperationRequest](c)
		if input == nil {
			return err
		}
		created, err := svc.Create(
			c.Context(),
			input.AccountID, input.Type, input.Value, input.CreatedAt,
		)
		if err != nil {
			return common.DomainErrorResponseJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Created operation", toResponse(created))
	}
}

// ListOperations returns all operations.
func ListOperations(svc *operationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ops, err := svc.List(c.Context())
		if err != nil {
			return common.DomainErrorResponseJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Operations found", toResponses(ops))
	}
}

// ListOperationsByAccount returns the operations owned by an account.
func ListOperationsByAccount(svc *operationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID, err := parseID(c)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", err.Error())
		}
		ops, err := svc.ListByAccount(c.Context(), accountID)
		if err != nil {
			return common.DomainErrorResponseJSON(c, err)
		}
		if len(ops) == 0 {
			return common.ErrorResponseJSON(c, fiber.StatusNotFound, "Operations not found", nil)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Operations found", toResponses(ops))
	}
}

// ListOperationsByDate returns the operations of an account created at the
// instant passed in the date query parameter.
func ListOperationsByDate(svc *operationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID, err := parseID(c)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", err.Error())
		}
		date, err := parseDate(c.Query("date"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid date", err.Error())
		}
		ops, err := svc.ListByAccountAndDate(c.Context(), accountID, date)
		if err != nil {
			return common.DomainErrorResponseJSON(c, err)
		}
		if len(ops) == 0 {
			return common.ErrorResponseJSON(c, fiber.StatusNotFound, "Operations not found", nil)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Operations found", toResponses(ops))
	}
}

// UpdateOperation overwrites an operation and reconciles the owning balance.
func UpdateOperation(svc *operationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid operation ID", err.Error())
		}
		input, err := common.BindAndValidate[UpdateOperationRequest](c)
		if input == nil {
			return err
		}
		updated, err := svc.Update(c.Context(), id, input.Type, input.Value, input.CreatedAt)
		if err != nil {
			return common.DomainErrorResponseJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Operation updated", toResponse(updated))
	}
}

// DeleteOperation reverses and removes an operation by id.
func DeleteOperation(svc *operationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid operation ID", err.Error())
		}
		deleted, err := svc.Delete(c.Context(), id)
		if err != nil {
			return common.DomainErrorResponseJSON(c, err)
		}
		if !deleted {
			return common.ErrorResponseJSON(c, fiber.StatusNotFound, "Operation not found", nil)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Operation deleted", nil)
	}
}

// DeleteOperationByParams reverses and removes the operation matching the
// (value, type, created_at) query parameters for the account in the path.
func DeleteOperationByParams(svc *operationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID, err := parseID(c)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", err.Error())
		}
		value, err := decimal.NewFromString(c.Query("value"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid value", err.Error())
		}
		date, err := parseDate(c.Query("created_at"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid created_at", err.Error())
		}
		deleted, err := svc.DeleteByAttributes(c.Context(), value, c.Query("type"), date, accountID)
		if err != nil {
			return common.DomainErrorResponseJSON(c, err)
		}
		if !deleted {
			return common.ErrorResponseJSON(c, fiber.StatusNotFound, "Operation not found", nil)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Operation deleted", nil)
	}
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// parseDate accepts RFC 3339 timestamps or bare dates.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
