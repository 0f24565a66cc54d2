package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/questify-api/internal/domain"
)

type contextKey string

const (
	AccountKey contextKey = "account"
	TokenKey   contextKey = "token"
)

type authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Account, error)
}

// Auth returns middleware that accepts only the account's current bearer
// token and injects the account and raw token into context.
func Auth(a authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeJSONError(w, http.StatusUnauthorized, "not authorized")
				return
			}
			tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			account, err := a.Authenticate(r.Context(), tokenStr)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthorized) {
					writeJSONError(w, http.StatusUnauthorized, domain.Message(err))
					return
				}
				slog.ErrorContext(r.Context(), "authenticate request", "err", err, "request_id", chimiddleware.GetReqID(r.Context()))
				writeJSONError(w, http.StatusInternalServerError, "internal server error")
				return
			}
			ctx := context.WithValue(r.Context(), AccountKey, account)
			ctx = context.WithValue(ctx, TokenKey, tokenStr)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccountFromContext extracts the authenticated account from the request context.
func AccountFromContext(ctx context.Context) (*domain.Account, bool) {
	a, ok := ctx.Value(AccountKey).(*domain.Account)
	return a, ok && a != nil
}

func TokenFromContext(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(TokenKey).(string)
	return t, ok
}
