package storage

import (
	"context"
	"sync"

	"invoicepad/internal/domain"
)

// MemoryRepository is an in-memory Repository used by tests and by ephemeral
// sessions that opt out of durable storage. It keeps the same single-slot,
// last-write-wins semantics as the BadgerDB implementation.
type MemoryRepository struct {
	mu    sync.Mutex
	doc   domain.Invoice
	saved bool

	// SaveErr, when set, is returned by every Save. Lets tests exercise the
	// log-and-continue path for storage failures.
	SaveErr error
}

// NewMemoryRepository returns an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Load returns the last saved invoice, or ErrNoDocument if Save was never
// called.
func (r *MemoryRepository) Load(ctx context.Context) (domain.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.saved {
		return domain.Invoice{}, ErrNoDocument
	}
	return r.doc.Clone(), nil
}

// Save stores a copy of the invoice.
func (r *MemoryRepository) Save(ctx context.Context, inv domain.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.doc = inv.Clone()
	r.saved = true
	return nil
}

// Close is a no-op.
func (r *MemoryRepository) Close() error { return nil }
