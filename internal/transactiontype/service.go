package transactiontype

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transactiontype
type Repository interface {
	CreateTransactionType(ctx context.Context, t *TransactionType) error
	GetTransactionType(ctx context.Context, id uuid.UUID) (*TransactionType, error)
	ListTransactionTypes(ctx context.Context) ([]*TransactionType, error)
	UpdateTransactionType(ctx context.Context, id uuid.UUID, params UpdateParams) (*TransactionType, error)
	DeleteTransactionType(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name  string
	Type1 string
	Type2 string
}

// UpdateParams carries only the supplied fields; nil leaves the stored value.
type UpdateParams struct {
	Name  *string
	Type1 *string
	Type2 *string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*TransactionType, error) {
	t := &TransactionType{
		Name:  params.Name,
		Type1: params.Type1,
		Type2: params.Type2,
	}
	if err := s.repo.CreateTransactionType(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*TransactionType, error) {
	return s.repo.GetTransactionType(ctx, id)
}

// List returns every type, newest first.
func (s *Service) List(ctx context.Context) ([]*TransactionType, error) {
	return s.repo.ListTransactionTypes(ctx)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*TransactionType, error) {
	return s.repo.UpdateTransactionType(ctx, id, params)
}

// Delete removes the type. Transactions referencing it are left in place.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteTransactionType(ctx, id)
}
