// Package auth checks admin logins against the single configured credential pair.
package auth

import (
	"crypto/subtle"

	"github.com/horsepowerelectrical/contact-api/internal/apperr"
	"github.com/horsepowerelectrical/contact-api/internal/model"
)

var (
	ErrMissingCredentials = apperr.Validation("missing credentials")
	ErrInvalidCredentials = apperr.Auth("invalid credentials")
)

type Checker struct {
	email    []byte
	password []byte
}

func NewChecker(email, password string) *Checker {
	return &Checker{email: []byte(email), password: []byte(password)}
}

// Authenticate matches both fields exactly. A wrong email and a wrong
// password produce the same error, and both comparisons always run.
func (c *Checker) Authenticate(email, password string) (model.AdminIdentity, error) {
	if email == "" || password == "" {
		return model.AdminIdentity{}, ErrMissingCredentials
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), c.email)
	passOK := subtle.ConstantTimeCompare([]byte(password), c.password)
	if emailOK&passOK != 1 {
		return model.AdminIdentity{}, ErrInvalidCredentials
	}

	return model.AdminIdentity{Email: email}, nil
}
