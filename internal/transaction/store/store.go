package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/settle/internal/transaction"
	"github.com/MrJamesThe3rd/settle/internal/transactiontype"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectTransactionColumns = `
	t.id, t.mid, t.tid, t.transaction_type_id, t.batch, t.amount, t.net_amount,
	t.mdr, t.status, t.date, t.difference, t.created_at, t.updated_at
`

const selectTypeColumns = `
	tt.id, tt.name, tt.type1, tt.type2, tt.created_at, tt.updated_at
`

const returningColumns = `
	id, mid, tid, transaction_type_id, batch, amount, net_amount,
	mdr, status, date, difference, created_at, updated_at
`

const fromTransactions = `
	FROM transactions t
	LEFT JOIN transaction_types tt ON tt.id = t.transaction_type_id
`

// scanTransaction reads the transaction columns and, when withType is set, the
// joined transaction type columns that follow them.
func scanTransaction(s scanner, withType bool) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var (
		tid, batch              sql.NullString
		mdr, difference         sql.NullFloat64
		date                    sql.NullTime
		typeID                  uuid.NullUUID
		typeName, type1, type2  sql.NullString
		typeCreated, typeUpdate sql.NullTime
	)

	dest := []any{
		&tx.ID, &tx.MID, &tid, &tx.TransactionTypeID, &batch, &tx.Amount, &tx.NetAmount,
		&mdr, &tx.Status, &date, &difference, &tx.CreatedAt, &tx.UpdatedAt,
	}
	if withType {
		dest = append(dest, &typeID, &typeName, &type1, &type2, &typeCreated, &typeUpdate)
	}

	if err := s.Scan(dest...); err != nil {
		return nil, err
	}

	tx.TID = tid.String
	tx.Batch = batch.String

	if mdr.Valid {
		tx.MDR = &mdr.Float64
	}

	if difference.Valid {
		tx.Difference = &difference.Float64
	}

	if date.Valid {
		tx.Date = &date.Time
	}

	if typeID.Valid {
		tx.TransactionType = &transactiontype.TransactionType{
			ID:        typeID.UUID,
			Name:      typeName.String,
			Type1:     type1.String,
			Type2:     type2.String,
			CreatedAt: typeCreated.Time,
			UpdatedAt: typeUpdate.Time,
		}
	}

	return &tx, nil
}

// clock_timestamp keeps rows inserted in one database transaction in order.
const insertTransaction = `
	INSERT INTO transactions (mid, tid, transaction_type_id, batch, amount, net_amount, mdr, status, date, difference, created_at, updated_at)
	VALUES ($1, NULLIF($2, ''), $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, clock_timestamp(), clock_timestamp())
	RETURNING id, created_at, updated_at
`

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insert(ctx context.Context, db execer, tx *transaction.Transaction) error {
	return db.QueryRowContext(ctx, insertTransaction,
		tx.MID,
		tx.TID,
		tx.TransactionTypeID,
		tx.Batch,
		tx.Amount,
		tx.NetAmount,
		tx.MDR,
		tx.Status,
		tx.Date,
		tx.Difference,
	).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
}

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	if err := insert(ctx, s.db, tx); err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) CreateTransactions(ctx context.Context, txs []*transaction.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	for i, tx := range txs {
		if err := insert(ctx, dbTx, tx); err != nil {
			return fmt.Errorf("creating transaction %d: %w", i+1, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `, ` + selectTypeColumns + fromTransactions + `
		WHERE t.id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id), true)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `, ` + selectTypeColumns + fromTransactions + `
		ORDER BY t.created_at DESC, t.id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	txs := []*transaction.Transaction{}

	for rows.Next() {
		tx, err := scanTransaction(rows, true)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, id uuid.UUID, params transaction.UpdateParams) (*transaction.Transaction, error) {
	query := `
		UPDATE transactions
		SET mid = COALESCE($1, mid),
			tid = CASE WHEN $2::text IS NULL THEN tid ELSE NULLIF($2, '') END,
			transaction_type_id = COALESCE($3, transaction_type_id),
			batch = CASE WHEN $4::text IS NULL THEN batch ELSE NULLIF($4, '') END,
			amount = COALESCE($5, amount),
			net_amount = COALESCE($6, net_amount),
			mdr = COALESCE($7, mdr),
			status = COALESCE($8, status),
			date = COALESCE($9, date),
			difference = COALESCE($10, difference),
			updated_at = NOW()
		WHERE id = $11
		RETURNING ` + returningColumns

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query,
		params.MID,
		params.TID,
		params.TransactionTypeID,
		params.Batch,
		params.Amount,
		params.NetAmount,
		params.MDR,
		params.Status,
		params.Date,
		params.Difference,
		id,
	), false)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("updating transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	if n == 0 {
		return transaction.ErrNotFound
	}

	return nil
}
