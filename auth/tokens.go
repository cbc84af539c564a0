// SPDX-License-Identifier: GPL-3.0-only

package auth

import (
	"errors"
	"time"
	"waitline-server/commons"
	"waitline-server/models"

	"github.com/golang-jwt/jwt/v5"
)

type Sessions struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
}

func NewSessions() *Sessions {
	return &Sessions{
		Secret: []byte(commons.GetEnv("JWT_SECRET", "default_very_secret_key")),
		TTL:    30 * 24 * time.Hour,
		Issuer: "https://waitline.app",
	}
}

func (s *Sessions) Sign(signup *models.Signup) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": s.Issuer,
		"iat": time.Now().Unix(),
		"sub": signup.Email,
		"uid": signup.ID,
		"exp": time.Now().Add(s.TTL).Unix(),
	})
	return token.SignedString(s.Secret)
}

// Verify parses a session token and returns the email it was issued for.
func (s *Sessions) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.Secret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid or expired session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	email, ok := claims["sub"].(string)
	if !ok || email == "" {
		return "", errors.New("token missing subject")
	}
	return email, nil
}
