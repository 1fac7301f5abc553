package service

import (
	"fmt"
	"time"

	"canteen/canteen-svc/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer signs and verifies identity tokens. It knows nothing about passwords;
// whoever holds the client secret vouches for the identity it asks a token for.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (i *TokenIssuer) Issue(identity domain.Identity) (string, error) {
	if identity.UserID == "" {
		return "", validationError("user id is required")
	}
	if !identity.Role.Valid() {
		return "", validationError("unknown role %q", identity.Role)
	}

	now := i.now()
	claims := jwt.MapClaims{
		"sub":   identity.UserID,
		"name":  identity.Name,
		"email": identity.Email,
		"role":  string(identity.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(i.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

func (i *TokenIssuer) Parse(raw string) (*domain.Identity, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(i.now))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", ErrNotAuthenticated)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: invalid claims", ErrNotAuthenticated)
	}
	identity := &domain.Identity{
		UserID: claimString(claims, "sub"),
		Name:   claimString(claims, "name"),
		Email:  claimString(claims, "email"),
		Role:   domain.Role(claimString(claims, "role")),
	}
	if identity.UserID == "" || !identity.Role.Valid() {
		return nil, fmt.Errorf("%w: incomplete identity", ErrNotAuthenticated)
	}
	return identity, nil
}

func claimString(claims jwt.MapClaims, key string) string {
	value, _ := claims[key].(string)
	return value
}

var _ IdentityProvider = (*TokenIssuer)(nil)
