package domain

import (
	"slices"
	"time"
)

// ScopeExplore allows starting exploration runs.
const ScopeExplore = "explore"

// OperatorClaims is the identity carried by an operator token.
type OperatorClaims struct {
	Subject   string
	Scopes    []string
	ExpiresAt time.Time
}

// HasScope reports whether the claims grant scope.
func (c *OperatorClaims) HasScope(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}
