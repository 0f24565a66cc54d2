package handler

import (
	"errors"
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/questify-api/internal/domain"
)

// statusByKind maps each workflow error kind to its HTTP status.
var statusByKind = []struct {
	kind   error
	status int
}{
	{domain.ErrValidation, http.StatusBadRequest},
	{domain.ErrConflict, http.StatusConflict},
	{domain.ErrUnauthorized, http.StatusUnauthorized},
	{domain.ErrUnverified, http.StatusBadRequest},
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrNotification, http.StatusInternalServerError},
}

// writeDomainError is the single place workflow errors become HTTP responses.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var de *domain.Error
	if errors.As(err, &de) {
		for _, m := range statusByKind {
			if errors.Is(de.Kind, m.kind) {
				if m.status >= http.StatusInternalServerError {
					logFailure(r, err)
				}
				writeError(w, m.status, de.Error())
				return
			}
		}
	}
	logFailure(r, err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

func logFailure(r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", chimiddleware.GetReqID(r.Context()),
		"err", err,
	)
}
