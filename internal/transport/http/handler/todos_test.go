package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/questify-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validTodo() domain.CreateTodoRequest {
	return domain.CreateTodoRequest{
		Title: "walk", Difficulty: domain.DifficultyNormal, Date: "2026-10-18",
		Time: "10:00", Status: "incomplete", Category: "health",
	}
}

func TestCreateTodo_RejectsUnknownDifficulty(t *testing.T) {
	svc := &mockTodoSvc{}
	body := validTodo()
	body.Difficulty = "impossible"
	r := withAccount(jsonReq(t, http.MethodPost, "/todos", body), &domain.Account{AccountID: "acc1"})
	rr := httptest.NewRecorder()
	NewTodoHandler(svc).Create(rr, r)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decodeBody[MessageEnvelope](t, rr).Message, "difficulty")
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateTodo_Created(t *testing.T) {
	svc := &mockTodoSvc{}
	svc.On("Create", mock.Anything, "acc1", validTodo()).Return(&domain.Todo{TodoID: "t1", OwnerID: "acc1", Title: "walk"}, nil)
	r := withAccount(jsonReq(t, http.MethodPost, "/todos", validTodo()), &domain.Account{AccountID: "acc1"})
	rr := httptest.NewRecorder()
	NewTodoHandler(svc).Create(rr, r)

	require.Equal(t, http.StatusCreated, rr.Code)
	resp := decodeBody[TodoEnvelope](t, rr)
	assert.Equal(t, "Todo added", resp.Message)
	assert.Equal(t, "t1", resp.Todo.TodoID)
	svc.AssertExpectations(t)
}

func TestListTodos_EmptyListIsArray(t *testing.T) {
	svc := &mockTodoSvc{}
	svc.On("List", mock.Anything, "acc1").Return(&domain.Account{AccountID: "acc1", Username: "alice"}, nil, nil)
	r := withAccount(httptest.NewRequest(http.MethodGet, "/todos", nil), &domain.Account{AccountID: "acc1"})
	rr := httptest.NewRecorder()
	NewTodoHandler(svc).List(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"user":{"id":"acc1","username":"alice","email":"","verified":false,"todoListIds":[]},"todos":[]}`, rr.Body.String())
}

func TestListTodos_NoAccount(t *testing.T) {
	svc := &mockTodoSvc{}
	rr := httptest.NewRecorder()
	NewTodoHandler(svc).List(rr, httptest.NewRequest(http.MethodGet, "/todos", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
