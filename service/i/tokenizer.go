package i

import (
	"time"

	dmn "github.com/dpersh/robot/domain"
)

// Tokenizer defines methods for generating and decoding operator tokens.
type Tokenizer interface {
	// Generate creates a token carrying the subject and scopes, valid for expTime.
	Generate(subject string, scopes []string, expTime time.Duration) (string, error)

	// Decode validates and parses a token, returning its claims.
	Decode(token string) (*dmn.OperatorClaims, error)
}
