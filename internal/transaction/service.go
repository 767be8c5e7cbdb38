package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/settle/internal/transactiontype"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ListTransactions(ctx context.Context) ([]*Transaction, error)
	UpdateTransaction(ctx context.Context, id uuid.UUID, params UpdateParams) (*Transaction, error)
	DeleteTransaction(ctx context.Context, id uuid.UUID) error

	// CreateTransactions writes all rows or none.
	CreateTransactions(ctx context.Context, txs []*Transaction) error
}

// TypeLookup resolves the transaction type a transaction refers to.
type TypeLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*transactiontype.TransactionType, error)
}

type Service struct {
	repo  Repository
	types TypeLookup
}

func NewService(repo Repository, types TypeLookup) *Service {
	return &Service{repo: repo, types: types}
}

// Create stores a new transaction once its transaction type is known to exist.
// A missing type yields transactiontype.ErrNotFound and nothing is written.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if _, err := s.types.Get(ctx, params.TransactionTypeID); err != nil {
		return nil, err
	}

	tx := newTransaction(params)
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

// List returns every transaction, newest first, with its type resolved.
func (s *Service) List(ctx context.Context) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx)
}

// Update applies a partial update. The type reference is only checked when the
// caller supplies a new one.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Transaction, error) {
	if _, err := s.repo.GetTransaction(ctx, id); err != nil {
		return nil, err
	}

	if params.TransactionTypeID != nil {
		if _, err := s.types.Get(ctx, *params.TransactionTypeID); err != nil {
			return nil, err
		}
	}

	return s.repo.UpdateTransaction(ctx, id, params)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteTransaction(ctx, id)
}

// ImportBatch stores a batch of settlement rows that all reference typeID.
// The type is checked once; the rows are written atomically.
func (s *Service) ImportBatch(ctx context.Context, typeID uuid.UUID, params []CreateParams) ([]*Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	if _, err := s.types.Get(ctx, typeID); err != nil {
		return nil, err
	}

	txs := make([]*Transaction, len(params))
	for i, p := range params {
		p.TransactionTypeID = typeID
		txs[i] = newTransaction(p)
	}

	if err := s.repo.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("import batch: %w", err)
	}

	return txs, nil
}

func newTransaction(p CreateParams) *Transaction {
	return &Transaction{
		MID:               p.MID,
		TID:               p.TID,
		TransactionTypeID: p.TransactionTypeID,
		Batch:             p.Batch,
		Amount:            p.Amount,
		NetAmount:         p.NetAmount,
		MDR:               p.MDR,
		Status:            p.Status,
		Date:              p.Date,
		Difference:        p.Difference,
	}
}
