package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

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

// Expected column order: id, name, type1, type2, created_at, updated_at
func scanTransactionType(s scanner) (*transactiontype.TransactionType, error) {
	var t transactiontype.TransactionType

	var type1, type2 sql.NullString

	if err := s.Scan(&t.ID, &t.Name, &type1, &type2, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}

	t.Type1 = type1.String
	t.Type2 = type2.String

	return &t, nil
}

const selectColumns = `id, name, type1, type2, created_at, updated_at`

func (s *Store) CreateTransactionType(ctx context.Context, t *transactiontype.TransactionType) error {
	query := `
		INSERT INTO transaction_types (name, type1, type2, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query, t.Name, t.Type1, t.Type2).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction type: %w", err)
	}

	return nil
}

func (s *Store) GetTransactionType(ctx context.Context, id uuid.UUID) (*transactiontype.TransactionType, error) {
	query := `SELECT ` + selectColumns + ` FROM transaction_types WHERE id = $1`

	t, err := scanTransactionType(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transactiontype.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction type: %w", err)
	}

	return t, nil
}

func (s *Store) ListTransactionTypes(ctx context.Context) ([]*transactiontype.TransactionType, error) {
	query := `SELECT ` + selectColumns + ` FROM transaction_types ORDER BY created_at DESC, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing transaction types: %w", err)
	}
	defer rows.Close()

	types := []*transactiontype.TransactionType{}

	for rows.Next() {
		t, err := scanTransactionType(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction type: %w", err)
		}

		types = append(types, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction types: %w", err)
	}

	return types, nil
}

// UpdateTransactionType applies only the non-nil params. An empty string clears
// an optional qualifier.
func (s *Store) UpdateTransactionType(ctx context.Context, id uuid.UUID, params transactiontype.UpdateParams) (*transactiontype.TransactionType, error) {
	query := `
		UPDATE transaction_types
		SET name = COALESCE($1, name),
			type1 = CASE WHEN $2::text IS NULL THEN type1 ELSE NULLIF($2, '') END,
			type2 = CASE WHEN $3::text IS NULL THEN type2 ELSE NULLIF($3, '') END,
			updated_at = NOW()
		WHERE id = $4
		RETURNING ` + selectColumns

	t, err := scanTransactionType(s.db.QueryRowContext(ctx, query, params.Name, params.Type1, params.Type2, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transactiontype.ErrNotFound
		}

		return nil, fmt.Errorf("updating transaction type: %w", err)
	}

	return t, nil
}

func (s *Store) DeleteTransactionType(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transaction_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting transaction type: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting transaction type: %w", err)
	}

	if n == 0 {
		return transactiontype.ErrNotFound
	}

	return nil
}
