package service

import (
	"errors"
	"time"

	dmn "github.com/dpersh/robot/domain"
	"github.com/dpersh/robot/service/i"
)

const (
	operatorSubject      = "operator"
	defaultTokenLifetime = 24 * time.Hour
)

var ErrInvalidOperatorKey = errors.New("invalid operator key")

// KeyVerifier checks a plain operator key.
type KeyVerifier interface {
	VerifyKey(key string) bool
}

var _ i.Authenticator = &Auth{}

// Auth exchanges operator keys for exploration tokens.
type Auth struct {
	verifier  KeyVerifier
	tokenizer i.Tokenizer
	lifetime  time.Duration
}

// NewAuthService creates an Auth. A non-positive lifetime uses one day.
func NewAuthService(v KeyVerifier, t i.Tokenizer, lifetime time.Duration) (*Auth, error) {
	if v == nil || t == nil {
		return nil, errors.New("auth service needs a key verifier and a tokenizer")
	}
	if lifetime <= 0 {
		lifetime = defaultTokenLifetime
	}
	return &Auth{verifier: v, tokenizer: t, lifetime: lifetime}, nil
}

// IssueToken returns a token granting the explore scope if key is valid.
func (a *Auth) IssueToken(key string) (string, error) {
	if !a.verifier.VerifyKey(key) {
		return "", ErrInvalidOperatorKey
	}
	return a.tokenizer.Generate(operatorSubject, []string{dmn.ScopeExplore}, a.lifetime)
}
