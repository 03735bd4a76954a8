package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aibrid/zipo-server/internal/domain"
)

type jwtClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

type jwtProvider struct {
	secret []byte
	expiry time.Duration
}

// NewJWTProvider returns a token provider that signs and verifies HS256
// JWTs with the given secret. It implements both domain.TokenIssuer and
// domain.TokenVerifier.
func NewJWTProvider(secret string, expiry time.Duration) *jwtProvider {
	return &jwtProvider{secret: []byte(secret), expiry: expiry}
}

func (p *jwtProvider) Issue(userID, email string) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.expiry)),
		},
		Email: email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (p *jwtProvider) Verify(tokenString string) (userID, email string, err error) {
	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return "", "", domain.ErrUnauthorized
	}
	return claims.Subject, claims.Email, nil
}
