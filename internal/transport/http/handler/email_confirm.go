package handler

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/questify-api/internal/application/auth"
)

var verifiedPage = template.Must(template.New("verified").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Email verified</title></head>
<body>
<h1>Thank you, {{.Username}}!</h1>
<p>Your email has been verified. You can now log in.</p>
</body>
</html>
`))

// EmailConfirmHandler redeems verification links sent by email.
type EmailConfirmHandler struct {
	svc auth.Service
}

func NewEmailConfirmHandler(svc auth.Service) *EmailConfirmHandler {
	return &EmailConfirmHandler{svc: svc}
}

func (h *EmailConfirmHandler) Verify(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.VerifyEmail(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := verifiedPage.Execute(w, struct{ Username string }{a.Username}); err != nil {
		slog.ErrorContext(r.Context(), "render verified page", "err", err)
	}
}
