package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"strings"
)

var ErrUnauthorized = errors.New("unauthorized")

// Auth checks callers against the single shared secret.
type Auth struct {
	secret string
}

func NewAuth(secret string) *Auth {
	return &Auth{
		secret: secret,
	}
}

// Check never authorizes anyone while no secret is configured.
func (a *Auth) Check(candidate string) error {
	if a.secret == "" || candidate == "" {
		return ErrUnauthorized
	}
	if subtle.ConstantTimeCompare(a.digest(candidate), a.digest(a.secret)) != 1 {
		return ErrUnauthorized
	}
	return nil
}

// CheckBearer checks an Authorization header of the form "Bearer <secret>".
func (a *Auth) CheckBearer(header string) error {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ErrUnauthorized
	}
	return a.Check(token)
}

// digest makes the comparison independent of the candidate's length.
func (a *Auth) digest(value string) []byte {
	hash := sha256.Sum256([]byte(value))
	return hash[:]
}
