package handler

import (
	"encoding/json"
	"net/http"

	"github.com/questify-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message"`
}

// RegisterEnvelope wraps the register response.
type RegisterEnvelope struct {
	User    *domain.PublicAccount `json:"user"`
	Message string                `json:"message"`
}

// AuthEnvelope wraps login responses.
type AuthEnvelope struct {
	Token string                `json:"token"`
	User  *domain.PublicAccount `json:"user"`
}

type TodoEnvelope struct {
	Todo    *domain.Todo `json:"todo"`
	Message string       `json:"message"`
}

type TodosEnvelope struct {
	User  *domain.PublicAccount `json:"user"`
	Todos []domain.Todo         `json:"todos"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Message: msg})
}

// decodeJSON reads the request body into v. A malformed body is a validation error.
func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.WrapError(domain.ErrValidation, "invalid request body", err)
	}
	return nil
}
