package webapi_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/primebank/ledger/config"
	memorybus "github.com/primebank/ledger/infra/eventbus"
	"github.com/primebank/ledger/internal/fixtures/memuow"
	"github.com/primebank/ledger/pkg/app"
	"github.com/primebank/ledger/pkg/notification"
	"github.com/primebank/ledger/webapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	deps := &app.Deps{
		Config: &config.App{
			RateLimit: config.RateLimit{MaxRequests: 10000, Window: time.Minute},
		},
		Logger:   logger,
		Uow:      memuow.New(),
		EventBus: memorybus.NewWithMemory(logger),
		Hub:      notification.NewHub(logger),
	}
	return webapi.SetupApp(app.New(deps))
}

func doJSON(t *testing.T, fiberApp *fiber.App, method, target string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := fiberApp.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close() //nolint:errcheck
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createAccount(t *testing.T, fiberApp *fiber.App, phone string) uint {
	t.Helper()
	resp := doJSON(t, fiberApp, fiber.MethodPost, "/account", map[string]any{
		"phone":    phone,
		"name":     "Ada",
		"surname":  "Lovelace",
		"password": "s3cr3tpwd",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	data := body["data"].(map[string]any)
	return uint(data["id"].(float64))
}

func TestRootEndpoint(t *testing.T) {
	fiberApp := newTestApp(t)
	resp := doJSON(t, fiberApp, fiber.MethodGet, "/", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Ledger is running", string(raw))
}

func TestCreateAccount(t *testing.T) {
	fiberApp := newTestApp(t)

	resp := doJSON(t, fiberApp, fiber.MethodPost, "/account", map[string]any{
		"phone":    "0123456789",
		"name":     "Ada",
		"surname":  "Lovelace",
		"password": "s3cr3tpwd",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]any)
	assert.Equal(t, "0123456789", data["phone"])
	assert.NotContains(t, data, "password", "credentials never leave the API")
}

func TestCreateAccountShortPhone(t *testing.T) {
	fiberApp := newTestApp(t)

	resp := doJSON(t, fiberApp, fiber.MethodPost, "/account", map[string]any{
		"phone":    "012345678",
		"name":     "Ada",
		"surname":  "Lovelace",
		"password": "s3cr3tpwd",
	})
	assert.Equal(t, fiber.StatusNotAcceptable, resp.StatusCode)
}

func TestCreateAccountDuplicatePhone(t *testing.T) {
	fiberApp := newTestApp(t)
	createAccount(t, fiberApp, "0123456789")

	resp := doJSON(t, fiberApp, fiber.MethodPost, "/account", map[string]any{
		"phone":    "0123456789",
		"name":     "Grace",
		"surname":  "Hopper",
		"password": "s3cr3tpwd",
	})
	assert.Equal(t, fiber.StatusNotAcceptable, resp.StatusCode)
}

func TestGetAccountByID(t *testing.T) {
	fiberApp := newTestApp(t)
	id := createAccount(t, fiberApp, "0123456789")

	resp := doJSON(t, fiberApp, fiber.MethodGet, fmt.Sprintf("/account/id/%d", id), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, fiberApp, fiber.MethodGet, "/account/id/404", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetAccountByPhoneWithPassword(t *testing.T) {
	fiberApp := newTestApp(t)
	createAccount(t, fiberApp, "0123456789")

	resp := doJSON(t, fiberApp, fiber.MethodGet, "/account/phone/0123456789?password=s3cr3tpwd", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, fiberApp, fiber.MethodGet, "/account/phone/0123456789?password=wrongpass", nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, fiberApp, fiber.MethodGet, "/account/phone/9999999999?password=s3cr3tpwd", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUpdateAccountByPhone(t *testing.T) {
	fiberApp := newTestApp(t)
	createAccount(t, fiberApp, "0123456789")

	resp := doJSON(t, fiberApp, fiber.MethodPut, "/account/phone/0123456789", map[string]any{
		"phone":    "0987654321",
		"name":     "Augusta",
		"surname":  "King",
		"password": "newsecret",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	data := body["data"].(map[string]any)
	assert.Equal(t, "0987654321", data["phone"])
	assert.Equal(t, "Augusta", data["name"])

	resp = doJSON(t, fiberApp, fiber.MethodPut, "/account/phone/0123456789", map[string]any{
		"phone":    "0987654321",
		"name":     "Nobody",
		"surname":  "Here",
		"password": "whatever1",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteAccountCascades(t *testing.T) {
	fiberApp := newTestApp(t)
	id := createAccount(t, fiberApp, "0123456789")

	resp := doJSON(t, fiberApp, fiber.MethodPost, "/operation", map[string]any{
		"account_id": id,
		"type":       "wage",
		"value":      "100",
		"created_at": "2024-03-01T12:00:00Z",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, fiberApp, fiber.MethodDelete, fmt.Sprintf("/account/%d", id), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, fiberApp, fiber.MethodGet, fmt.Sprintf("/operation/account/%d", id), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, "cascade removes owned operations")

	resp = doJSON(t, fiberApp, fiber.MethodDelete, fmt.Sprintf("/account/%d", id), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestOperationLifecycle(t *testing.T) {
	fiberApp := newTestApp(t)
	id := createAccount(t, fiberApp, "0123456789")

	resp := doJSON(t, fiberApp, fiber.MethodPost, "/operation", map[string]any{
		"account_id": id,
		"type":       "wage",
		"value":      "100",
		"created_at": "2024-03-01T12:00:00Z",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	opID := uint(body["data"].(map[string]any)["id"].(float64))

	resp = doJSON(t, fiberApp, fiber.MethodGet, fmt.Sprintf("/account/id/%d", id), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	balance := decodeBody(t, resp)["data"].(map[string]any)["balance"]
	assert.Equal(t, "100", fmt.Sprint(balance))

	resp = doJSON(t, fiberApp, fiber.MethodPatch, fmt.Sprintf("/operation/%d", opID), map[string]any{
		"type":       "wage",
		"value":      "60",
		"created_at": "2024-03-01T12:00:00Z",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, fiberApp, fiber.MethodGet, fmt.Sprintf("/account/id/%d", id), nil)
	balance = decodeBody(t, resp)["data"].(map[string]any)["balance"]
	assert.Equal(t, "60", fmt.Sprint(balance))

	resp = doJSON(t, fiberApp, fiber.MethodDelete, fmt.Sprintf("/operation/%d", opID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, fiberApp, fiber.MethodGet, fmt.Sprintf("/account/id/%d", id), nil)
	balance = decodeBody(t, resp)["data"].(map[string]any)["balance"]
	assert.Equal(t, "0", fmt.Sprint(balance))
}

func TestUpdateOperationRejectsPartialBody(t *testing.T) {
	fiberApp := newTestApp(t)
	id := createAccount(t, fiberApp, "0123456789")

	resp := doJSON(t, fiberApp, fiber.MethodPost, "/operation", map[string]any{
		"account_id": id,
		"type":       "wage",
		"value":      "100",
		"created_at": "2024-03-01T12:00:00Z",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	opID := uint(decodeBody(t, resp)["data"].(map[string]any)["id"].(float64))

	// Omitting created_at must not overwrite the stored timestamp with the
	// zero value.
	resp = doJSON(t, fiberApp, fiber.MethodPatch, fmt.Sprintf("/operation/%d", opID), map[string]any{
		"type":  "wage",
		"value": "60",
	})
	assert.NotEqual(t, fiber.StatusOK, resp.StatusCode)

	// Same for an omitted value.
	resp = doJSON(t, fiberApp, fiber.MethodPatch, fmt.Sprintf("/operation/%d", opID), map[string]any{
		"type":       "wage",
		"created_at": "2024-03-01T12:00:00Z",
	})
	assert.NotEqual(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, fiberApp, fiber.MethodGet,
		fmt.Sprintf("/operation/date/%d?date=2024-03-01T12:00:00Z", id), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, "stored created_at is unchanged")
	ops := decodeBody(t, resp)["data"].([]any)
	require.Len(t, ops, 1)
	assert.Equal(t, "100", fmt.Sprint(ops[0].(map[string]any)["value"]))

	resp = doJSON(t, fiberApp, fiber.MethodGet, fmt.Sprintf("/account/id/%d", id), nil)
	balance := decodeBody(t, resp)["data"].(map[string]any)["balance"]
	assert.Equal(t, "100", fmt.Sprint(balance), "rejected updates never move the balance")
}

func TestCreateOperationInvalidType(t *testing.T) {
	fiberApp := newTestApp(t)
	id := createAccount(t, fiberApp, "0123456789")

	resp := doJSON(t, fiberApp, fiber.MethodPost, "/operation", map[string]any{
		"account_id": id,
		"type":       "refund",
		"value":      "10",
		"created_at": "2024-03-01T12:00:00Z",
	})
	assert.Equal(t, fiber.StatusNotAcceptable, resp.StatusCode)
}

func TestCreateOperationForMissingAccount(t *testing.T) {
	fiberApp := newTestApp(t)

	resp := doJSON(t, fiberApp, fiber.MethodPost, "/operation", map[string]any{
		"account_id": 404,
		"type":       "wage",
		"value":      "10",
		"created_at": "2024-03-01T12:00:00Z",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListOperationsByAccountEmpty(t *testing.T) {
	fiberApp := newTestApp(t)
	id := createAccount(t, fiberApp, "0123456789")

	resp := doJSON(t, fiberApp, fiber.MethodGet, fmt.Sprintf("/operation/account/%d", id), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteOperationByParams(t *testing.T) {
	fiberApp := newTestApp(t)
	id := createAccount(t, fiberApp, "0123456789")

	resp := doJSON(t, fiberApp, fiber.MethodPost, "/operation", map[string]any{
		"account_id": id,
		"type":       "payment",
		"value":      "25",
		"created_at": "2024-03-01T12:00:00Z",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	target := fmt.Sprintf(
		"/operation/params/%d?value=25&type=payment&created_at=2024-03-01T12:00:00Z", id)
	resp = doJSON(t, fiberApp, fiber.MethodDelete, target, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, fiberApp, fiber.MethodDelete, target, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
