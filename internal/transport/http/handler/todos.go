package handler

import (
	"net/http"

	"github.com/questify-api/internal/application/todo"
	"github.com/questify-api/internal/domain"
	"github.com/questify-api/internal/pkg/validate"
	"github.com/questify-api/internal/transport/http/middleware"
)

// TodoHandler serves the authenticated account's todo list.
type TodoHandler struct {
	svc todo.Service
}

func NewTodoHandler(svc todo.Service) *TodoHandler { return &TodoHandler{svc: svc} }

func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	a, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authorized")
		return
	}
	var req domain.CreateTodoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeDomainError(w, r, err)
		return
	}
	t, err := h.svc.Create(r.Context(), a.AccountID, req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, TodoEnvelope{Todo: t, Message: "Todo added"})
}

func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	a, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authorized")
		return
	}
	owner, todos, err := h.svc.List(r.Context(), a.AccountID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if todos == nil {
		todos = []domain.Todo{}
	}
	writeJSON(w, http.StatusOK, TodosEnvelope{User: owner.Public(), Todos: todos})
}
