package store_test

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/settle/internal/database"
	"github.com/MrJamesThe3rd/settle/internal/transaction"
	"github.com/MrJamesThe3rd/settle/internal/transaction/store"
	"github.com/MrJamesThe3rd/settle/internal/transactiontype"
	typeStore "github.com/MrJamesThe3rd/settle/internal/transactiontype/store"
)

// testDatabaseURLEnv names a disposable Postgres database for store tests.
const testDatabaseURLEnv = "SETTLE_TEST_DATABASE_URL"

func openDB(t *testing.T) *sql.DB {
	t.Helper()

	url := os.Getenv(testDatabaseURLEnv)
	if url == "" {
		t.Skipf("%s not set", testDatabaseURLEnv)
	}

	db, err := database.New(url)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.EnsureSchema(context.Background(), db))

	return db
}

func createType(t *testing.T, db *sql.DB) *transactiontype.TransactionType {
	t.Helper()

	tt := &transactiontype.TransactionType{Name: "BCA", Type1: "Debit"}
	require.NoError(t, typeStore.New(db).CreateTransactionType(context.Background(), tt))

	t.Cleanup(func() {
		_, _ = db.Exec(`DELETE FROM transaction_types WHERE id = $1`, tt.ID)
	})

	return tt
}

func newTransaction(typeID uuid.UUID, mid string) *transaction.Transaction {
	return &transaction.Transaction{
		MID:               mid,
		TID:               "T0001",
		TransactionTypeID: typeID,
		Batch:             "000123",
		Amount:            150000,
		NetAmount:         148500,
		MDR:               new(1500.0),
		Status:            "settled",
		Date:              new(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)),
	}
}

func cleanupTransactions(t *testing.T, db *sql.DB, txs ...*transaction.Transaction) {
	t.Cleanup(func() {
		for _, tx := range txs {
			_, _ = db.Exec(`DELETE FROM transactions WHERE id = $1`, tx.ID)
		}
	})
}

func TestStore_CreateTransactionsKeepsInsertionOrder(t *testing.T) {
	db := openDB(t)
	s := store.New(db)
	ctx := context.Background()
	tt := createType(t, db)

	batch := []*transaction.Transaction{
		newTransaction(tt.ID, "000070000001"),
		newTransaction(tt.ID, "000070000002"),
		newTransaction(tt.ID, "000070000003"),
	}

	require.NoError(t, s.CreateTransactions(ctx, batch))
	cleanupTransactions(t, db, batch...)

	for i := 1; i < len(batch); i++ {
		assert.True(t, batch[i].CreatedAt.After(batch[i-1].CreatedAt),
			"row %d created_at %v not after row %d %v", i, batch[i].CreatedAt, i-1, batch[i-1].CreatedAt)
	}

	all, err := s.ListTransactions(ctx)
	require.NoError(t, err)

	inBatch := map[uuid.UUID]bool{}
	for _, tx := range batch {
		inBatch[tx.ID] = true
	}

	var got []uuid.UUID

	for _, tx := range all {
		if inBatch[tx.ID] {
			got = append(got, tx.ID)
		}
	}

	assert.Equal(t, []uuid.UUID{batch[2].ID, batch[1].ID, batch[0].ID}, got)
}

func TestStore_UpdateTransaction(t *testing.T) {
	db := openDB(t)
	s := store.New(db)
	ctx := context.Background()
	tt := createType(t, db)

	tx := newTransaction(tt.ID, "000071234567")
	require.NoError(t, s.CreateTransaction(ctx, tx))
	cleanupTransactions(t, db, tx)

	t.Run("EmptyParamsLeaveRecord", func(t *testing.T) {
		got, err := s.UpdateTransaction(ctx, tx.ID, transaction.UpdateParams{})
		require.NoError(t, err)

		assert.Equal(t, "000071234567", got.MID)
		assert.Equal(t, "T0001", got.TID)
		assert.Equal(t, "000123", got.Batch)
		require.NotNil(t, got.MDR)
		assert.InDelta(t, 1500.0, *got.MDR, 0.001)
		require.NotNil(t, got.Date)
		assert.Equal(t, "2024-03-15", got.Date.Format(time.DateOnly))
	})

	t.Run("EmptyStringClearsOptionalText", func(t *testing.T) {
		got, err := s.UpdateTransaction(ctx, tx.ID, transaction.UpdateParams{
			TID:    new(""),
			Status: new("void"),
		})
		require.NoError(t, err)

		assert.Empty(t, got.TID)
		assert.Equal(t, "000123", got.Batch)
		assert.Equal(t, "void", got.Status)
		assert.Equal(t, "000071234567", got.MID)
	})

	t.Run("SuppliedValuesReplace", func(t *testing.T) {
		got, err := s.UpdateTransaction(ctx, tx.ID, transaction.UpdateParams{
			Batch:  new("000999"),
			Amount: new(200000.0),
		})
		require.NoError(t, err)

		assert.Equal(t, "000999", got.Batch)
		assert.InDelta(t, 200000.0, got.Amount, 0.001)
		assert.InDelta(t, 148500.0, got.NetAmount, 0.001)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := s.UpdateTransaction(ctx, uuid.New(), transaction.UpdateParams{Status: new("void")})
		assert.ErrorIs(t, err, transaction.ErrNotFound)
	})
}

func TestStore_GetTransaction(t *testing.T) {
	db := openDB(t)
	s := store.New(db)
	ctx := context.Background()
	tt := createType(t, db)

	tx := newTransaction(tt.ID, "000079999999")
	require.NoError(t, s.CreateTransaction(ctx, tx))
	cleanupTransactions(t, db, tx)

	t.Run("PopulatesType", func(t *testing.T) {
		got, err := s.GetTransaction(ctx, tx.ID)
		require.NoError(t, err)

		require.NotNil(t, got.TransactionType)
		assert.Equal(t, "BCA (Debit)", got.TransactionType.DisplayName())
	})

	t.Run("DeletedTypeLeavesNil", func(t *testing.T) {
		require.NoError(t, typeStore.New(db).DeleteTransactionType(ctx, tt.ID))

		got, err := s.GetTransaction(ctx, tx.ID)
		require.NoError(t, err)

		assert.Nil(t, got.TransactionType)
		assert.Equal(t, tt.ID, got.TransactionTypeID)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := s.GetTransaction(ctx, uuid.New())
		assert.ErrorIs(t, err, transaction.ErrNotFound)

		assert.ErrorIs(t, s.DeleteTransaction(ctx, uuid.New()), transaction.ErrNotFound)
	})
}
