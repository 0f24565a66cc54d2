package domain

import "time"

// Account is the credential record. VerificationToken is set while the account
// is unverified; SessionToken holds the only bearer token currently accepted.
type Account struct {
	AccountID         string    `json:"id" dynamodbav:"account_id"`
	Username          string    `json:"username" dynamodbav:"username"`
	Email             string    `json:"email" dynamodbav:"email"`
	PasswordHash      string    `json:"-" dynamodbav:"password_hash"`
	Verified          bool      `json:"verified" dynamodbav:"verified"`
	VerificationToken *string   `json:"-" dynamodbav:"verification_token,omitempty"`
	SessionToken      *string   `json:"-" dynamodbav:"session_token,omitempty"`
	OwnedItemIDs      []string  `json:"todoListIds" dynamodbav:"owned_item_ids"`
	CreatedAt         time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt         time.Time `json:"updated" dynamodbav:"updated_at"`
}

// PublicAccount is the sanitized projection returned to clients.
type PublicAccount struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Verified    bool     `json:"verified"`
	TodoListIDs []string `json:"todoListIds"`
}

func (a *Account) Public() *PublicAccount {
	if a == nil {
		return nil
	}
	ids := make([]string, len(a.OwnedItemIDs))
	copy(ids, a.OwnedItemIDs)
	return &PublicAccount{
		ID:          a.AccountID,
		Username:    a.Username,
		Email:       a.Email,
		Verified:    a.Verified,
		TodoListIDs: ids,
	}
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

// LoginRequest resolves the account by Email when present, else by Username.
type LoginRequest struct {
	Email    string `json:"email" validate:"required_without=Username"`
	Username string `json:"username" validate:"required_without=Email"`
	Password string `json:"password" validate:"required"`
}
