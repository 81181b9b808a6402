package identity

// TokenRequest carries the operator key exchanged for a token.
type TokenRequest struct {
	Key string `json:"key" binding:"required"`
}

// TokenResponse carries the issued token.
type TokenResponse struct {
	Token string `json:"token"`
}
