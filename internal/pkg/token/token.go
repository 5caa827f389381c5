// Package token mints and validates the HMAC-signed tokens that identify
// wizard sessions. The token carries the session id and business slug so a
// caller can only touch the session it started.
package token

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

type Service struct {
	secret []byte
	ttl    time.Duration
}

type Claims struct {
	SessionID    string `json:"session_id"`
	BusinessSlug string `json:"business_slug"`
	jwtlib.RegisteredClaims
}

func New(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (s *Service) Generate(sessionID, businessSlug string) (string, error) {
	claims := Claims{
		SessionID:    sessionID,
		BusinessSlug: businessSlug,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(s.ttl)),
			IssuedAt:  jwtlib.NewNumericDate(time.Now()),
		},
	}

	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return tok.SignedString(s.secret)
}

func (s *Service) Validate(tokenStr string) (*Claims, error) {
	tok, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, errors.New("invalid session token")
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	return claims, nil
}
