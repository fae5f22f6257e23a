// Package jwttoken issues and checks the bearer tokens returned at login.
// A token names the account and the registration session it was issued for.
package jwttoken

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "signup/pkg/domain-errors"
	"signup/pkg/requestcontext"
)

var (
	ErrTokenExpired = dErrors.New(dErrors.CodeUnauthorized, "token has expired")
	ErrTokenInvalid = dErrors.New(dErrors.CodeUnauthorized, "invalid token")
)

// Claims are the access token claims.
type Claims struct {
	Email     string `json:"email"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// JWTService signs and validates HS256 tokens.
type JWTService struct {
	signingKey []byte
	issuer     string
	audience   string
}

func NewJWTService(signingKey string, issuer string, audience string) *JWTService {
	return &JWTService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		audience:   audience,
	}
}

// GenerateAccessToken issues a token valid for expiresIn from the context
// time.
func (s *JWTService) GenerateAccessToken(ctx context.Context, email, sessionID string, expiresIn time.Duration) (string, error) {
	now := requestcontext.Now(ctx)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email:     email,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Audience:  []string{s.audience},
			ID:        uuid.NewString(),
		},
	})
	return token.SignedString(s.signingKey)
}

// ValidateToken checks signature, issuer, audience and expiry against the
// context time.
func (s *JWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	now := requestcontext.Now(ctx)
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenUnverifiable
			}
			return s.signingKey, nil
		},
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
