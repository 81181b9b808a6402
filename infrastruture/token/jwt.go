package token

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	dmn "github.com/dpersh/robot/domain"
	"github.com/dpersh/robot/service/i"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrInvalidIssuer  = errors.New("token issued by a different service")
	ErrSigningMethod  = errors.New("unexpected signing method")
	ErrEmptySecretKey = errors.New("empty JWT secret")
)

var _ i.Tokenizer = &JwtService{}

type operatorClaims struct {
	Scopes []string `json:"scopes"`
	jwt.StandardClaims
}

// JwtService signs and verifies operator tokens with HMAC-SHA256.
type JwtService struct {
	secretKey []byte
	issuer    string
}

// NewJwtService creates a new JWT Service with the provided configuration.
func NewJwtService(secretKey, issuer string) (*JwtService, error) {
	if secretKey == "" {
		return nil, ErrEmptySecretKey
	}
	return &JwtService{
		secretKey: []byte(secretKey),
		issuer:    issuer,
	}, nil
}

// Generate creates a signed token for subject carrying scopes.
func (s *JwtService) Generate(subject string, scopes []string, expTime time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := operatorClaims{
		Scopes: scopes,
		StandardClaims: jwt.StandardClaims{
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(expTime).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// Decode parses and validates a token, returning its claims if valid.
func (s *JwtService) Decode(tokenString string) (*dmn.OperatorClaims, error) {
	var claims operatorClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, s.getSigningKey)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.VerifyIssuer(s.issuer, true) {
		return nil, ErrInvalidIssuer
	}

	return &dmn.OperatorClaims{
		Subject:   claims.Subject,
		Scopes:    claims.Scopes,
		ExpiresAt: time.Unix(claims.ExpiresAt, 0).UTC(),
	}, nil
}

// getSigningKey returns the signing key for token validation.
func (s *JwtService) getSigningKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrSigningMethod
	}
	return s.secretKey, nil
}
