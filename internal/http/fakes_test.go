package http_test

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/settle/internal/transaction"
	"github.com/MrJamesThe3rd/settle/internal/transactiontype"
)

// clock hands out strictly increasing timestamps so newest-first ordering is stable.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) next() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(time.Second)

	return c.now
}

type memTypes struct {
	mu    sync.Mutex
	clock *clock
	rows  map[uuid.UUID]transactiontype.TransactionType
}

func newMemTypes(c *clock) *memTypes {
	return &memTypes{clock: c, rows: map[uuid.UUID]transactiontype.TransactionType{}}
}

func (m *memTypes) CreateTransactionType(ctx context.Context, t *transactiontype.TransactionType) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t.ID = uuid.New()
	t.CreatedAt = m.clock.next()
	t.UpdatedAt = t.CreatedAt
	m.rows[t.ID] = *t

	return nil
}

func (m *memTypes) GetTransactionType(ctx context.Context, id uuid.UUID) (*transactiontype.TransactionType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.rows[id]
	if !ok {
		return nil, transactiontype.ErrNotFound
	}

	return &t, nil
}

func (m *memTypes) ListTransactionTypes(ctx context.Context) ([]*transactiontype.TransactionType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*transactiontype.TransactionType, 0, len(m.rows))
	for _, t := range m.rows {
		out = append(out, &t)
	}

	slices.SortFunc(out, func(a, b *transactiontype.TransactionType) int { return b.CreatedAt.Compare(a.CreatedAt) })

	return out, nil
}

func (m *memTypes) UpdateTransactionType(ctx context.Context, id uuid.UUID, params transactiontype.UpdateParams) (*transactiontype.TransactionType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.rows[id]
	if !ok {
		return nil, transactiontype.ErrNotFound
	}

	if params.Name != nil {
		t.Name = *params.Name
	}

	if params.Type1 != nil {
		t.Type1 = *params.Type1
	}

	if params.Type2 != nil {
		t.Type2 = *params.Type2
	}

	t.UpdatedAt = m.clock.next()
	m.rows[id] = t

	return &t, nil
}

func (m *memTypes) DeleteTransactionType(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[id]; !ok {
		return transactiontype.ErrNotFound
	}

	delete(m.rows, id)

	return nil
}

type memTransactions struct {
	mu    sync.Mutex
	clock *clock
	types *memTypes
	rows  map[uuid.UUID]transaction.Transaction
}

func newMemTransactions(c *clock, types *memTypes) *memTransactions {
	return &memTransactions{clock: c, types: types, rows: map[uuid.UUID]transaction.Transaction{}}
}

func (m *memTransactions) insert(tx *transaction.Transaction) {
	tx.ID = uuid.New()
	tx.CreatedAt = m.clock.next()
	tx.UpdatedAt = tx.CreatedAt
	m.rows[tx.ID] = *tx
}

// resolve emulates the LEFT JOIN: a deleted type leaves TransactionType nil.
func (m *memTransactions) resolve(tx transaction.Transaction) *transaction.Transaction {
	tx.TransactionType = nil
	if t, err := m.types.GetTransactionType(context.Background(), tx.TransactionTypeID); err == nil {
		tx.TransactionType = t
	}

	return &tx
}

func (m *memTransactions) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.insert(tx)

	return nil
}

func (m *memTransactions) CreateTransactions(ctx context.Context, txs []*transaction.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, tx := range txs {
		m.insert(tx)
	}

	return nil
}

func (m *memTransactions) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx, ok := m.rows[id]
	if !ok {
		return nil, transaction.ErrNotFound
	}

	return m.resolve(tx), nil
}

func (m *memTransactions) ListTransactions(ctx context.Context) ([]*transaction.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*transaction.Transaction, 0, len(m.rows))
	for _, tx := range m.rows {
		out = append(out, m.resolve(tx))
	}

	slices.SortFunc(out, func(a, b *transaction.Transaction) int { return b.CreatedAt.Compare(a.CreatedAt) })

	return out, nil
}

func (m *memTransactions) UpdateTransaction(ctx context.Context, id uuid.UUID, p transaction.UpdateParams) (*transaction.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx, ok := m.rows[id]
	if !ok {
		return nil, transaction.ErrNotFound
	}

	set(&tx.MID, p.MID)
	set(&tx.TID, p.TID)
	set(&tx.Batch, p.Batch)
	set(&tx.Amount, p.Amount)
	set(&tx.NetAmount, p.NetAmount)
	set(&tx.Status, p.Status)
	set(&tx.TransactionTypeID, p.TransactionTypeID)

	if p.MDR != nil {
		tx.MDR = p.MDR
	}

	if p.Date != nil {
		tx.Date = p.Date
	}

	if p.Difference != nil {
		tx.Difference = p.Difference
	}

	tx.UpdatedAt = m.clock.next()
	m.rows[id] = tx

	out := tx

	return &out, nil
}

func (m *memTransactions) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[id]; !ok {
		return transaction.ErrNotFound
	}

	delete(m.rows, id)

	return nil
}

func (m *memTransactions) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.rows)
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
