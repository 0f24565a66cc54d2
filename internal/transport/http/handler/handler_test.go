package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/questify-api/internal/application/session"
	"github.com/questify-api/internal/application/user"
	"github.com/questify-api/internal/domain"
	"github.com/questify-api/internal/transport/http/middleware"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockUserSvc struct{ mock.Mock }

func (m *mockUserSvc) Register(ctx context.Context, req domain.RegisterRequest) (*user.RegisterResult, error) {
	args := m.Called(ctx, req)
	if r, _ := args.Get(0).(*user.RegisterResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockAuthSvc struct{ mock.Mock }

func (m *mockAuthSvc) VerifyEmail(ctx context.Context, token string) (*domain.Account, error) {
	args := m.Called(ctx, token)
	if a, _ := args.Get(0).(*domain.Account); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSessionSvc struct{ mock.Mock }

func (m *mockSessionSvc) Login(ctx context.Context, req domain.LoginRequest) (*session.LoginResult, error) {
	args := m.Called(ctx, req)
	if r, _ := args.Get(0).(*session.LoginResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessionSvc) Authenticate(ctx context.Context, token string) (*domain.Account, error) {
	args := m.Called(ctx, token)
	if a, _ := args.Get(0).(*domain.Account); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessionSvc) Logout(ctx context.Context, accountID string) error {
	return m.Called(ctx, accountID).Error(0)
}

type mockTodoSvc struct{ mock.Mock }

func (m *mockTodoSvc) Create(ctx context.Context, ownerID string, req domain.CreateTodoRequest) (*domain.Todo, error) {
	args := m.Called(ctx, ownerID, req)
	if t, _ := args.Get(0).(*domain.Todo); t != nil {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTodoSvc) List(ctx context.Context, ownerID string) (*domain.Account, []domain.Todo, error) {
	args := m.Called(ctx, ownerID)
	a, _ := args.Get(0).(*domain.Account)
	todos, _ := args.Get(1).([]domain.Todo)
	return a, todos, args.Error(2)
}

// --- helpers ---

func jsonReq(t *testing.T, method, target string, v interface{}) *http.Request {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	return httptest.NewRequest(method, target, bytes.NewReader(body))
}

// withAccount stands in for middleware.Auth having accepted the request.
func withAccount(r *http.Request, a *domain.Account) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.AccountKey, a)
	return r.WithContext(ctx)
}

// withChiParam injects a chi URL param into the request context.
func withChiParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v))
	return v
}
