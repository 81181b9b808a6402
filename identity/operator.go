// Package identity verifies the operator key that is exchanged for tokens.
package identity

import (
	"errors"

	"github.com/nbutton23/zxcvbn-go"
	"golang.org/x/crypto/bcrypt"
)

const (
	minKeyStrengthScore = 3
	minKeyLength        = 12
)

var (
	ErrWeakKey     = errors.New("weak operator key")
	ErrShortKey    = errors.New("operator key too short")
	ErrMissingHash = errors.New("operator key hash is not configured")
)

// Operator holds the bcrypt hash of the operator key.
type Operator struct {
	keyHash []byte
}

// NewOperator creates an Operator from a bcrypt hash produced by HashKey.
func NewOperator(keyHash string) (*Operator, error) {
	if keyHash == "" {
		return nil, ErrMissingHash
	}
	if _, err := bcrypt.Cost([]byte(keyHash)); err != nil {
		return nil, err
	}
	return &Operator{keyHash: []byte(keyHash)}, nil
}

// VerifyKey verifies if the given key matches the stored hash.
func (o *Operator) VerifyKey(key string) bool {
	err := bcrypt.CompareHashAndPassword(o.keyHash, []byte(key))
	return err == nil
}

// HashKey validates the key's strength and returns its bcrypt hash.
func HashKey(key string) (string, error) {
	return hashKey(key, bcrypt.DefaultCost)
}

func hashKey(key string, cost int) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(key), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// validateKey checks the length and strength of the key.
func validateKey(key string) error {
	if len(key) < minKeyLength {
		return ErrShortKey
	}
	result := zxcvbn.PasswordStrength(key, nil)
	if result.Score < minKeyStrengthScore {
		return ErrWeakKey
	}
	return nil
}
