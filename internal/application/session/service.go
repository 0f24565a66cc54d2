package session

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/questify-api/internal/domain"
	jwtinfra "github.com/questify-api/internal/infrastructure/jwt"
)

const (
	msgBadCredentials = "email or password is wrong"
	msgNotVerified    = "email is not verified"
	msgNotAuthorized  = "not authorized"
)

type LoginResult struct {
	Token   string
	Account *domain.Account
}

type Service interface {
	Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error)
	// Authenticate resolves the account owning a bearer token. The token must
	// be signature-valid, unexpired and equal to the account's stored token.
	Authenticate(ctx context.Context, token string) (*domain.Account, error)
	Logout(ctx context.Context, accountID string) error
}

type accountStore interface {
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	SetSessionToken(ctx context.Context, accountID string, token *string) error
}

type passwordChecker interface {
	Compare(hash, plain string) (bool, error)
}

type tokenIssuer interface {
	Sign(accountID string) (string, error)
	Verify(token string) (*jwtinfra.Claims, error)
}

type service struct {
	accounts accountStore
	hasher   passwordChecker
	tokens   tokenIssuer
}

func NewService(accounts accountStore, hasher passwordChecker, tokens tokenIssuer) Service {
	return &service{accounts: accounts, hasher: hasher, tokens: tokens}
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error) {
	var a *domain.Account
	var err error
	if req.Email != "" {
		a, err = s.accounts.GetByEmail(ctx, req.Email)
	} else {
		a, err = s.accounts.GetByUsername(ctx, req.Username)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewError(domain.ErrUnauthorized, msgBadCredentials)
		}
		return nil, err
	}

	ok, err := s.hasher.Compare(a.PasswordHash, req.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NewError(domain.ErrUnauthorized, msgBadCredentials)
	}
	if !a.Verified {
		return nil, domain.NewError(domain.ErrUnverified, msgNotVerified)
	}

	token, err := s.tokens.Sign(a.AccountID)
	if err != nil {
		return nil, err
	}
	// Overwrites any earlier token, which stops authenticating from here on.
	if err := s.accounts.SetSessionToken(ctx, a.AccountID, &token); err != nil {
		return nil, err
	}
	a.SessionToken = &token
	return &LoginResult{Token: token, Account: a}, nil
}

func (s *service) Authenticate(ctx context.Context, token string) (*domain.Account, error) {
	if token == "" {
		return nil, domain.NewError(domain.ErrUnauthorized, msgNotAuthorized)
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, domain.WrapError(domain.ErrUnauthorized, msgNotAuthorized, err)
	}
	a, err := s.accounts.Get(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.WrapError(domain.ErrUnauthorized, msgNotAuthorized, err)
		}
		return nil, err
	}
	if a.SessionToken == nil || subtle.ConstantTimeCompare([]byte(*a.SessionToken), []byte(token)) != 1 {
		return nil, domain.NewError(domain.ErrUnauthorized, msgNotAuthorized)
	}
	return a, nil
}

func (s *service) Logout(ctx context.Context, accountID string) error {
	return s.accounts.SetSessionToken(ctx, accountID, nil)
}
