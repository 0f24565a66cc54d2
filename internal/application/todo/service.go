package todo

import (
	"context"
	"time"

	"github.com/questify-api/internal/domain"
	"github.com/questify-api/internal/pkg/id"
)

type Service interface {
	Create(ctx context.Context, ownerID string, req domain.CreateTodoRequest) (*domain.Todo, error)
	// List returns the owner's todos in insertion order, along with a fresh
	// read of the owner.
	List(ctx context.Context, ownerID string) (*domain.Account, []domain.Todo, error)
}

type accountReader interface {
	Get(ctx context.Context, accountID string) (*domain.Account, error)
}

type todoStore interface {
	Create(ctx context.Context, t *domain.Todo) error
	ListByIDs(ctx context.Context, ids []string) ([]domain.Todo, error)
}

type service struct {
	accounts accountReader
	todos    todoStore
	now      func() time.Time
}

func NewService(accounts accountReader, todos todoStore) Service {
	return &service{accounts: accounts, todos: todos, now: time.Now}
}

func (s *service) Create(ctx context.Context, ownerID string, req domain.CreateTodoRequest) (*domain.Todo, error) {
	t := &domain.Todo{
		TodoID:     id.New(),
		OwnerID:    ownerID,
		Title:      req.Title,
		Difficulty: req.Difficulty,
		Date:       req.Date,
		Time:       req.Time,
		Status:     req.Status,
		Category:   req.Category,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.todos.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) List(ctx context.Context, ownerID string) (*domain.Account, []domain.Todo, error) {
	a, err := s.accounts.Get(ctx, ownerID)
	if err != nil {
		return nil, nil, err
	}
	todos, err := s.todos.ListByIDs(ctx, a.OwnedItemIDs)
	if err != nil {
		return nil, nil, err
	}
	return a, todos, nil
}
