package http

import (
	"context"

	"github.com/questify-api/internal/domain"
	jwtinfra "github.com/questify-api/internal/infrastructure/jwt"
)

// AccountRepository is the minimal interface the router requires from an account store.
type AccountRepository interface {
	// Create inserts the account; a taken email or username is a ConflictError.
	Create(ctx context.Context, a *domain.Account) error
	Delete(ctx context.Context, a *domain.Account) error
	// Get must read the latest committed state.
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	// Verify marks the account holding token verified and clears the token in one write.
	Verify(ctx context.Context, token string) (*domain.Account, error)
	SetSessionToken(ctx context.Context, accountID string, token *string) error
}

// TodoRepository is the minimal interface the router requires from a todo store.
type TodoRepository interface {
	Create(ctx context.Context, t *domain.Todo) error
	ListByIDs(ctx context.Context, ids []string) ([]domain.Todo, error)
}

// Notifier delivers templated messages to an email address.
type Notifier interface {
	Send(ctx context.Context, to, templateID string, data map[string]string) error
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) (bool, error)
}

type TokenProvider interface {
	Sign(accountID string) (string, error)
	Verify(token string) (*jwtinfra.Claims, error)
}
