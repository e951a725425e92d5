// Package app assembles the services from their dependencies and registers
// the event subscriptions that bridge committed mutations to the
// notification hub.
package app

import (
	"log/slog"

	"github.com/primebank/ledger/config"
	"github.com/primebank/ledger/pkg/eventbus"
	"github.com/primebank/ledger/pkg/handler/notify"
	"github.com/primebank/ledger/pkg/notification"
	"github.com/primebank/ledger/pkg/repository"
	accountsvc "github.com/primebank/ledger/pkg/service/account"
	operationsvc "github.com/primebank/ledger/pkg/service/operation"
)

// Deps carries the infrastructure dependencies built at startup.
type Deps struct {
	Config   *config.App
	Logger   *slog.Logger
	Uow      repository.UnitOfWork
	EventBus eventbus.Bus
	Hub      *notification.Hub
}

// App holds the assembled services.
type App struct {
	Config           *config.App
	Logger           *slog.Logger
	Hub              *notification.Hub
	AccountService   *accountsvc.Service
	OperationService *operationsvc.Service
}

// New builds the services and subscribes the notify handler to every ledger
// event type.
func New(deps *Deps) *App {
	notify.Register(deps.EventBus, deps.Hub, deps.Logger)

	return &App{
		Config:           deps.Config,
		Logger:           deps.Logger,
		Hub:              deps.Hub,
		AccountService:   accountsvc.New(deps.Uow, deps.EventBus, deps.Logger),
		OperationService: operationsvc.New(deps.Uow, deps.EventBus, deps.Logger),
	}
}
