package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New returns a ULID string. Used for account and todo keys and as the
// jti of session tokens, so two logins in the same second still differ.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
