// Package events defines the domain events emitted after a ledger mutation
// has been committed. Events are published strictly post-commit, so a
// subscriber can never observe a mutation that failed to persist.
package events

// Event is the marker interface for all domain events.
type Event interface {
	Type() string
}

// AccountCreated is emitted after a new account is persisted.
type AccountCreated struct {
	ID      uint
	Name    string
	Surname string
}

// AccountUpdated is emitted after an account's fields are overwritten.
type AccountUpdated struct {
	ID uint
}

// AccountDeleted is emitted after an account and all of its operations are
// removed.
type AccountDeleted struct {
	ID uint
}

// OperationCreated is emitted after an operation is persisted and the
// owning balance adjusted.
type OperationCreated struct {
	ID        uint
	AccountID uint
}

// OperationUpdated is emitted after an operation is overwritten and the
// owning balance reconciled.
type OperationUpdated struct {
	ID        uint
	AccountID uint
}

// OperationDeleted is emitted after an operation is removed and its balance
// effect reversed.
type OperationDeleted struct {
	ID        uint
	AccountID uint
}

func (AccountCreated) Type() string   { return "AccountCreated" }
func (AccountUpdated) Type() string   { return "AccountUpdated" }
func (AccountDeleted) Type() string   { return "AccountDeleted" }
func (OperationCreated) Type() string { return "OperationCreated" }
func (OperationUpdated) Type() string { return "OperationUpdated" }
func (OperationDeleted) Type() string { return "OperationDeleted" }
