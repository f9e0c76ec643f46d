package storage

import (
	"context"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicepad/internal/domain"
)

// setupTestDB creates a temporary BadgerDB repository for testing. t.TempDir
// handles directory cleanup; the returned func closes the database.
func setupTestDB(t *testing.T) (*BadgerRepository, func()) {
	t.Helper()

	testLogger := logrus.New()
	testLogger.SetOutput(os.Stderr)
	testLogger.SetLevel(logrus.ErrorLevel)

	repo, err := NewBadgerRepository(t.TempDir(), testLogger)
	require.NoError(t, err, "Failed to create test BadgerDB repository")

	return repo, func() {
		assert.NoError(t, repo.Close())
	}
}

func TestBadgerRepository_LoadEmpty(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, ErrNoDocument, "an empty slot must report ErrNoDocument")
}

func TestBadgerRepository_SaveAndLoad(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	inv := domain.Default()
	inv.Title = "Rechnung"
	inv.TaxRate = 19
	inv.LineItems[0].Description = "Consulting"

	require.NoError(t, repo.Save(ctx, inv))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, inv, loaded)
}

func TestBadgerRepository_LastWriteWins(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	first := domain.Default()
	first.InvoiceInfo.Number = "0001"
	require.NoError(t, repo.Save(ctx, first))

	second := domain.Default()
	second.InvoiceInfo.Number = "0002"
	second.DiscountRate = 5
	require.NoError(t, repo.Save(ctx, second))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0002", loaded.InvoiceInfo.Number)
	assert.Equal(t, float64(5), loaded.DiscountRate)
}

func TestBadgerRepository_SurvivesReopen(t *testing.T) {
	tempDir := t.TempDir()
	testLogger := logrus.New()
	testLogger.SetOutput(os.Stderr)
	testLogger.SetLevel(logrus.ErrorLevel)

	ctx := context.Background()

	repo, err := NewBadgerRepository(tempDir, testLogger)
	require.NoError(t, err)

	inv := domain.Default()
	inv.ThankYouMessage = "Danke!"
	require.NoError(t, repo.Save(ctx, inv))
	require.NoError(t, repo.Close())

	reopened, err := NewBadgerRepository(tempDir, testLogger)
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, reopened.Close())
	}()

	loaded, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Danke!", loaded.ThankYouMessage)
}

func TestMemoryRepository(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.Load(ctx)
	assert.ErrorIs(t, err, ErrNoDocument)

	inv := domain.Default()
	require.NoError(t, repo.Save(ctx, inv))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, inv, loaded)

	// The repository must hold a copy, not an alias.
	loaded.LineItems[0].Price = 999
	again, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(50), again.LineItems[0].Price)
}
