package auth

import (
	"context"
	"errors"

	"github.com/questify-api/internal/domain"
)

type Service interface {
	VerifyEmail(ctx context.Context, token string) (*domain.Account, error)
}

type accountStore interface {
	Verify(ctx context.Context, token string) (*domain.Account, error)
}

type service struct {
	accounts accountStore
}

func NewService(accounts accountStore) Service {
	return &service{accounts: accounts}
}

// VerifyEmail redeems a verification token. The store clears the token in the
// same write that marks the account verified, so a second redemption of the
// same token reports not found.
func (s *service) VerifyEmail(ctx context.Context, token string) (*domain.Account, error) {
	if token == "" {
		return nil, domain.NewError(domain.ErrNotFound, "User not found")
	}
	a, err := s.accounts.Verify(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.WrapError(domain.ErrNotFound, "User not found", err)
		}
		return nil, err
	}
	return a, nil
}
