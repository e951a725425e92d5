// Package initializer wires the application dependencies at startup.
package initializer

import (
	"fmt"

	"github.com/primebank/ledger/config"
	"github.com/primebank/ledger/infra"
	infraeventbus "github.com/primebank/ledger/infra/eventbus"
	infrarepository "github.com/primebank/ledger/infra/repository"
	"github.com/primebank/ledger/pkg/app"
	"github.com/primebank/ledger/pkg/notification"
)

// InitializeDependencies builds the logger, database connection, unit of
// work, event bus and notification hub.
func InitializeDependencies(cfg *config.App) (*app.Deps, error) {
	logger := setupLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, err
	}
	if err := infra.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &app.Deps{
		Config:   cfg,
		Logger:   logger,
		Uow:      infrarepository.NewUoW(db),
		EventBus: infraeventbus.NewWithMemory(logger),
		Hub:      notification.NewHub(logger),
	}, nil
}
