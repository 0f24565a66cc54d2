package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/questify-api/internal/domain"
	"github.com/questify-api/internal/pkg/id"
	pkgtoken "github.com/questify-api/internal/pkg/token"
)

const checkEmailMessage = "If you cannot find verification email, please check spam folder"

type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*RegisterResult, error)
}

type RegisterResult struct {
	Account *domain.Account
	Message string
}

type accountStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	Create(ctx context.Context, a *domain.Account) error
	Delete(ctx context.Context, a *domain.Account) error
}

type passwordHasher interface {
	Hash(plain string) (string, error)
}

type notifier interface {
	Send(ctx context.Context, to, templateID string, data map[string]string) error
}

type service struct {
	accounts       accountStore
	hasher         passwordHasher
	notifier       notifier
	verifyBaseURL  string
	failurePolicy  string
	notifyAttempts int
	newToken       func() (string, error)
}

type ServiceDeps struct {
	Accounts accountStore
	Hasher   passwordHasher
	Notifier notifier
	// VerifyBaseURL is the public origin; the link sent is VerifyBaseURL + "/users/verify/<token>".
	VerifyBaseURL  string
	FailurePolicy  string
	NotifyAttempts int
}

func NewService(deps ServiceDeps) Service {
	attempts := deps.NotifyAttempts
	if attempts < 1 {
		attempts = 1
	}
	policy := deps.FailurePolicy
	if policy == "" {
		policy = domain.NotifyFailureKeep
	}
	return &service{
		accounts:       deps.Accounts,
		hasher:         deps.Hasher,
		notifier:       deps.Notifier,
		verifyBaseURL:  deps.VerifyBaseURL,
		failurePolicy:  policy,
		notifyAttempts: attempts,
		newToken:       pkgtoken.NewVerificationToken,
	}
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*RegisterResult, error) {
	if err := s.ensureFree(ctx, s.accounts.GetByEmail, req.Email, "email already registered"); err != nil {
		return nil, err
	}
	if err := s.ensureFree(ctx, s.accounts.GetByUsername, req.Username, "username already registered"); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	verificationToken, err := s.newToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	a := &domain.Account{
		AccountID:         id.New(),
		Username:          req.Username,
		Email:             req.Email,
		PasswordHash:      hash,
		VerificationToken: &verificationToken,
		OwnedItemIDs:      []string{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	// Conflicts that slipped past the lookups surface here from the store.
	if err := s.accounts.Create(ctx, a); err != nil {
		return nil, err
	}

	if err := s.sendVerification(ctx, a, verificationToken); err != nil {
		return nil, s.notificationFailed(ctx, a, err)
	}
	return &RegisterResult{Account: a, Message: checkEmailMessage}, nil
}

func (s *service) ensureFree(ctx context.Context, lookup func(context.Context, string) (*domain.Account, error), value, conflictMsg string) error {
	_, err := lookup(ctx, value)
	switch {
	case err == nil:
		return domain.NewError(domain.ErrConflict, conflictMsg)
	case errors.Is(err, domain.ErrNotFound):
		return nil
	default:
		return err
	}
}

func (s *service) sendVerification(ctx context.Context, a *domain.Account, verificationToken string) error {
	data := map[string]string{
		"username":        a.Username,
		"verificationUrl": fmt.Sprintf("%s/users/verify/%s", s.verifyBaseURL, verificationToken),
	}
	var err error
	for attempt := 1; attempt <= s.notifyAttempts; attempt++ {
		if err = s.notifier.Send(ctx, a.Email, domain.TemplateVerifyEmail, data); err == nil {
			return nil
		}
		slog.Warn("verification email dispatch failed", "account_id", a.AccountID, "attempt", attempt, "err", err)
		if ctx.Err() != nil {
			break
		}
	}
	return err
}

// notificationFailed applies the configured policy to an account whose
// verification email never went out. The account write is kept unless the
// policy says otherwise.
func (s *service) notificationFailed(ctx context.Context, a *domain.Account, cause error) error {
	if s.failurePolicy == domain.NotifyFailureDelete {
		if err := s.accounts.Delete(context.WithoutCancel(ctx), a); err != nil {
			slog.Error("could not remove account after notification failure", "account_id", a.AccountID, "err", err)
		} else {
			slog.Info("removed account after notification failure", "account_id", a.AccountID)
		}
	} else {
		slog.Warn("account left unverified after notification failure", "account_id", a.AccountID, "email", a.Email)
	}
	return domain.WrapError(domain.ErrNotification, "we cannot send your verification email", cause)
}
