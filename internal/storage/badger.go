package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"

	"invoicepad/internal/domain"
)

// documentKey is the single storage slot holding the serialized invoice.
var documentKey = []byte("invoice:current")

// BadgerRepository implements Repository using BadgerDB.
type BadgerRepository struct {
	db  *badger.DB
	log logrus.FieldLogger
}

// NewBadgerRepository opens (or creates) the database at dbPath.
func NewBadgerRepository(dbPath string, logger logrus.FieldLogger) (*BadgerRepository, error) {
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = &badgerLogger{logger.WithField("component", "badgerdb")}

	db, err := badger.Open(opts)
	if err != nil {
		logger.WithError(err).Error("Failed to open BadgerDB")
		return nil, fmt.Errorf("failed to open badger db at %s: %w", dbPath, err)
	}

	return &BadgerRepository{
		db:  db,
		log: logger.WithField("component", "repository"),
	}, nil
}

// Close closes the underlying database.
func (r *BadgerRepository) Close() error {
	if err := r.db.Close(); err != nil {
		r.log.WithError(err).Error("Error closing BadgerDB")
		return err
	}
	return nil
}

// Load reads the invoice from the storage slot. ErrNoDocument means the slot
// has never been written; any other error means the stored bytes exist but
// could not be read back.
func (r *BadgerRepository) Load(ctx context.Context) (domain.Invoice, error) {
	var inv domain.Invoice

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(documentKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNoDocument
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			// Badger only guarantees val inside this closure; unmarshal
			// copies everything we keep.
			return json.Unmarshal(val, &inv)
		})
	})
	if errors.Is(err, ErrNoDocument) {
		return domain.Invoice{}, ErrNoDocument
	}
	if err != nil {
		r.log.WithError(err).Error("Failed to load invoice from BadgerDB")
		return domain.Invoice{}, fmt.Errorf("failed to load invoice: %w", err)
	}

	inv.Normalize()
	r.log.Debug("Invoice loaded from storage")
	return inv, nil
}

// Save overwrites the storage slot with the given invoice.
func (r *BadgerRepository) Save(ctx context.Context, inv domain.Invoice) error {
	data, err := json.Marshal(inv)
	if err != nil {
		r.log.WithError(err).Error("Failed to marshal invoice")
		return fmt.Errorf("failed to marshal invoice: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(documentKey, data))
	})
	if err != nil {
		r.log.WithError(err).Error("Failed to save invoice to BadgerDB")
		return fmt.Errorf("failed to save invoice: %w", err)
	}

	r.log.WithField("bytes", len(data)).Debug("Invoice saved to storage")
	return nil
}

// badgerLogger adapts logrus.FieldLogger to Badger's logger interface.
type badgerLogger struct {
	logger logrus.FieldLogger
}

func (l *badgerLogger) Errorf(f string, v ...interface{}) {
	l.logger.Errorf(f, v...)
}
func (l *badgerLogger) Warningf(f string, v ...interface{}) {
	l.logger.Warningf(f, v...)
}
func (l *badgerLogger) Infof(f string, v ...interface{}) {
	l.logger.Infof(f, v...)
}
func (l *badgerLogger) Debugf(f string, v ...interface{}) {
	l.logger.Debugf(f, v...)
}
