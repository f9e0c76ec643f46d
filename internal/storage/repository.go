package storage

import (
	"context"
	"errors"

	"invoicepad/internal/domain"
)

// ErrNoDocument is returned by Load when the storage slot is empty, i.e. the
// editor has never saved anything. Callers fall back to the built-in default
// document.
var ErrNoDocument = errors.New("storage: no document saved")

// Repository defines the interface for durable document storage. There is a
// single slot holding the one invoice being edited; Save overwrites it and
// Load reads it back. Keeping this behind an interface allows swapping the
// BadgerDB implementation (e.g. for the in-memory one used in tests) without
// touching the editing session.
type Repository interface {
	// Load reads the last-saved invoice. It returns ErrNoDocument when the
	// slot is empty and a wrapped error when the stored bytes are unreadable.
	Load(ctx context.Context) (domain.Invoice, error)

	// Save serializes and writes the invoice, overwriting any previous
	// state. Called after every successful mutation; last write wins.
	Save(ctx context.Context, inv domain.Invoice) error

	// Close gracefully shuts down the repository.
	Close() error
}
