package handler

import (
	"net/http"

	"github.com/questify-api/internal/application/session"
	"github.com/questify-api/internal/domain"
	"github.com/questify-api/internal/pkg/validate"
	"github.com/questify-api/internal/transport/http/middleware"
)

// SessionHandler handles login and logout.
type SessionHandler struct {
	svc session.Service
}

func NewSessionHandler(svc session.Service) *SessionHandler {
	return &SessionHandler{svc: svc}
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeDomainError(w, r, err)
		return
	}
	result, err := h.svc.Login(r.Context(), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{
		Token: result.Token,
		User:  result.Account.Public(),
	})
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	a, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authorized")
		return
	}
	if err := h.svc.Logout(r.Context(), a.AccountID); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
