package account_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	memorybus "github.com/primebank/ledger/infra/eventbus"
	"github.com/primebank/ledger/internal/fixtures/memuow"
	"github.com/primebank/ledger/pkg/domain"
	"github.com/primebank/ledger/pkg/domain/events"
	accountsvc "github.com/primebank/ledger/pkg/service/account"
	operationsvc "github.com/primebank/ledger/pkg/service/operation"
	"github.com/primebank/ledger/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixture(t *testing.T) (*accountsvc.Service, *operationsvc.Service, *memuow.Store, *memorybus.MemoryEventBus) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memuow.New()
	bus := memorybus.NewWithMemory(logger)
	return accountsvc.New(store, bus, logger),
		operationsvc.New(store, bus, logger),
		store, bus
}

func TestCreate(t *testing.T) {
	svc, _, _, bus := newFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "0123456789", "Ada", "Lovelace", "s3cr3tpwd", decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "0123456789", created.Phone)
	assert.True(t, created.Balance.Equal(decimal.NewFromInt(10)))
	assert.NotEqual(t, "s3cr3tpwd", created.HashedPassword, "password must be stored hashed")
	assert.True(t, utils.CheckPasswordHash("s3cr3tpwd", created.HashedPassword))

	require.Len(t, bus.Published(), 1)
	assert.Equal(t, events.AccountCreated{
		ID:      created.ID,
		Name:    "Ada",
		Surname: "Lovelace",
	}, bus.Published()[0])
}

func TestCreateInvalidPhone(t *testing.T) {
	svc, _, _, bus := newFixture(t)
	ctx := context.Background()

	// Nine digits, one short of the minimum.
	_, err := svc.Create(ctx, "012345678", "Ada", "Lovelace", "s3cr3tpwd", decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidPhoneNumber)
	assert.Empty(t, bus.Published(), "no event for a failed mutation")

	accounts, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestCreateDuplicatePhone(t *testing.T) {
	svc, _, _, bus := newFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "0123456789", "Ada", "Lovelace", "s3cr3tpwd", decimal.Zero)
	require.NoError(t, err)
	bus.ClearPublished()

	_, err = svc.Create(ctx, "0123456789", "Grace", "Hopper", "s3cr3tpwd", decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrDuplicatePhoneNumber)
	assert.Empty(t, bus.Published())

	accounts, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}

func TestGetMissingAccount(t *testing.T) {
	svc, _, _, _ := newFixture(t)
	ctx := context.Background()

	a, err := svc.Get(ctx, 404)
	require.NoError(t, err)
	assert.Nil(t, a)

	a, err = svc.GetByPhone(ctx, "9999999999")
	require.NoError(t, err)
	assert.Nil(t, a)
}

func TestAuthenticate(t *testing.T) {
	svc, _, _, _ := newFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "0123456789", "Ada", "Lovelace", "s3cr3tpwd", decimal.Zero)
	require.NoError(t, err)

	a, err := svc.Authenticate(ctx, "0123456789", "s3cr3tpwd")
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, created.ID, a.ID)

	_, err = svc.Authenticate(ctx, "0123456789", "wrongpass")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	a, err = svc.Authenticate(ctx, "9999999999", "s3cr3tpwd")
	require.NoError(t, err)
	assert.Nil(t, a)
}

func TestUpdateByPhone(t *testing.T) {
	svc, _, _, bus := newFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "0123456789", "Ada", "Lovelace", "s3cr3tpwd", decimal.NewFromInt(5))
	require.NoError(t, err)
	bus.ClearPublished()

	updated, err := svc.UpdateByPhone(ctx, "0123456789", accountsvc.UpdateInput{
		Phone:    "0987654321",
		Name:     "Augusta",
		Surname:  "King",
		Password: "newsecret",
		Balance:  decimal.NewFromInt(5),
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "0987654321", updated.Phone)
	assert.Equal(t, "Augusta", updated.Name)
	assert.Equal(t, "King", updated.Surname)
	assert.True(t, utils.CheckPasswordHash("newsecret", updated.HashedPassword))

	require.Len(t, bus.Published(), 1)
	assert.Equal(t, events.AccountUpdated{ID: created.ID}, bus.Published()[0])
}

func TestUpdateByPhoneNotFound(t *testing.T) {
	svc, _, _, bus := newFixture(t)
	ctx := context.Background()

	_, err := svc.UpdateByPhone(ctx, "9999999999", accountsvc.UpdateInput{
		Phone:    "0987654321",
		Name:     "Ghost",
		Surname:  "User",
		Password: "whatever1",
	})
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	assert.Empty(t, bus.Published())
}

func TestUpdateByPhoneInvalidNewPhone(t *testing.T) {
	svc, _, _, bus := newFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "0123456789", "Ada", "Lovelace", "s3cr3tpwd", decimal.Zero)
	require.NoError(t, err)
	bus.ClearPublished()

	_, err = svc.UpdateByPhone(ctx, "0123456789", accountsvc.UpdateInput{
		Phone:    "123",
		Name:     "Ada",
		Surname:  "Lovelace",
		Password: "s3cr3tpwd",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPhoneNumber)
	assert.Empty(t, bus.Published())

	unchanged, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", unchanged.Phone)
}

func TestDeleteCascadesOperations(t *testing.T) {
	svc, ops, _, bus := newFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "0123456789", "Ada", "Lovelace", "s3cr3tpwd", decimal.Zero)
	require.NoError(t, err)

	_, err = ops.Create(ctx, created.ID, "wage", decimal.NewFromInt(100), testTime())
	require.NoError(t, err)
	_, err = ops.Create(ctx, created.ID, "payment", decimal.NewFromInt(30), testTime())
	require.NoError(t, err)
	bus.ClearPublished()

	deleted, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	a, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, a)

	remaining, err := ops.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining, "operations must never outlive their account")

	require.Len(t, bus.Published(), 1)
	assert.Equal(t, events.AccountDeleted{ID: created.ID}, bus.Published()[0])
}

func testTime() time.Time {
	return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestDeleteMissingAccount(t *testing.T) {
	svc, _, _, bus := newFixture(t)
	ctx := context.Background()

	deleted, err := svc.Delete(ctx, 404)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Empty(t, bus.Published())
}
