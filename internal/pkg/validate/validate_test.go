package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/questify-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestStruct_RegisterRequest(t *testing.T) {
	err := Struct(domain.RegisterRequest{Username: "alice", Email: "not-an-email", Password: "pw"})
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Contains(t, err.Error(), "field 'email' failed 'email'")

	assert.NoError(t, Struct(domain.RegisterRequest{Username: "alice", Email: "a@x.com", Password: "pw1"}))
}

func TestStruct_LoginNeedsEmailOrUsername(t *testing.T) {
	err := Struct(domain.LoginRequest{Password: "pw1"})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	assert.NoError(t, Struct(domain.LoginRequest{Email: "a@x.com", Password: "pw1"}))
	assert.NoError(t, Struct(domain.LoginRequest{Username: "alice", Password: "pw1"}))
}

func TestStruct_TodoDifficulty(t *testing.T) {
	req := domain.CreateTodoRequest{
		Title: "Run", Difficulty: "extreme", Date: "2024-01-01", Time: "10:00", Status: "open", Category: "health",
	}
	err := Struct(req)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Contains(t, err.Error(), "'difficulty' failed 'oneof'")

	req.Difficulty = domain.DifficultyHard
	assert.NoError(t, Struct(req))
}

func TestStruct_PasswordLimitCountsBytes(t *testing.T) {
	// 40 runes, 80 bytes.
	err := Struct(domain.RegisterRequest{Username: "alice", Email: "a@x.com", Password: strings.Repeat("ж", 40)})
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Contains(t, err.Error(), "field 'password' failed 'maxbytes'")

	assert.NoError(t, Struct(domain.RegisterRequest{Username: "alice", Email: "a@x.com", Password: strings.Repeat("ж", 36)}))
	assert.NoError(t, Struct(domain.RegisterRequest{Username: "alice", Email: "a@x.com", Password: strings.Repeat("a", 72)}))
}
