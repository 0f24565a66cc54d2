package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/questify-api/internal/application/session"
	"github.com/questify-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Login tests ---

func TestLogin_InvalidBody(t *testing.T) {
	svc := &mockSessionSvc{}
	r := httptest.NewRequest(http.MethodPut, "/users/login", bytes.NewBufferString("{"))
	rr := httptest.NewRecorder()
	NewSessionHandler(svc).Login(rr, r)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLogin_NeedsEmailOrUsername(t *testing.T) {
	svc := &mockSessionSvc{}
	r := jsonReq(t, http.MethodPut, "/users/login", domain.LoginRequest{Password: "pw1"})
	rr := httptest.NewRecorder()
	NewSessionHandler(svc).Login(rr, r)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestLogin_ErrorStatuses(t *testing.T) {
	cases := map[string]struct {
		err    error
		status int
	}{
		"bad credentials": {domain.NewError(domain.ErrUnauthorized, "email or password is wrong"), http.StatusUnauthorized},
		"unverified":      {domain.NewError(domain.ErrUnverified, "email is not verified"), http.StatusBadRequest},
		"store failure":   {errors.New("dynamo unavailable"), http.StatusInternalServerError},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			svc := &mockSessionSvc{}
			svc.On("Login", mock.Anything, mock.Anything).Return(nil, tc.err)
			r := jsonReq(t, http.MethodPut, "/users/login", domain.LoginRequest{Email: "a@x.com", Password: "pw1"})
			rr := httptest.NewRecorder()
			NewSessionHandler(svc).Login(rr, r)

			assert.Equal(t, tc.status, rr.Code)
		})
	}
}

func TestLogin_StoreFailureHidesCause(t *testing.T) {
	svc := &mockSessionSvc{}
	svc.On("Login", mock.Anything, mock.Anything).Return(nil, errors.New("dynamo unavailable"))
	r := jsonReq(t, http.MethodPut, "/users/login", domain.LoginRequest{Email: "a@x.com", Password: "pw1"})
	rr := httptest.NewRecorder()
	NewSessionHandler(svc).Login(rr, r)

	assert.Equal(t, "internal server error", decodeBody[MessageEnvelope](t, rr).Message)
}

func TestLogin_HappyPath(t *testing.T) {
	svc := &mockSessionSvc{}
	stok := "jwt"
	svc.On("Login", mock.Anything, domain.LoginRequest{Email: "a@x.com", Password: "pw1"}).Return(&session.LoginResult{
		Token:   stok,
		Account: &domain.Account{AccountID: "acc1", Username: "alice", Verified: true, SessionToken: &stok},
	}, nil)
	r := jsonReq(t, http.MethodPut, "/users/login", domain.LoginRequest{Email: "a@x.com", Password: "pw1"})
	rr := httptest.NewRecorder()
	NewSessionHandler(svc).Login(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decodeBody[AuthEnvelope](t, rr)
	assert.Equal(t, "jwt", resp.Token)
	assert.Equal(t, "acc1", resp.User.ID)
	svc.AssertExpectations(t)
}

// --- Logout tests ---

func TestLogout_NoAccount(t *testing.T) {
	svc := &mockSessionSvc{}
	rr := httptest.NewRecorder()
	NewSessionHandler(svc).Logout(rr, httptest.NewRequest(http.MethodPut, "/users/logout", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLogout_NoContent(t *testing.T) {
	svc := &mockSessionSvc{}
	svc.On("Logout", mock.Anything, "acc1").Return(nil)
	r := withAccount(httptest.NewRequest(http.MethodPut, "/users/logout", nil), &domain.Account{AccountID: "acc1"})
	rr := httptest.NewRecorder()
	NewSessionHandler(svc).Logout(rr, r)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
	svc.AssertExpectations(t)
}
