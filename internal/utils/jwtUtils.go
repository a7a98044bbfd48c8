package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"petlove/internal/models"
)

var ErrMissingJWTSecret = errors.New("JWT secret is not configured")

type Claims struct {
	ID   string `json:"id"`
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// GenerateJWT signs an HS256 token for the user.
func GenerateJWT(user *models.User, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrMissingJWTSecret
	}

	now := time.Now()
	claims := &Claims{
		ID:   user.ID.Hex(),
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseJWT verifies the signature and expiry and returns the user id.
func ParseJWT(tokenString, secret string) (models.ID, error) {
	id, _, err := ParseIdentity(tokenString, secret)
	return id, err
}

// ParseIdentity is ParseJWT that also returns the role the token was
// issued with.
func ParseIdentity(tokenString, secret string) (models.ID, models.UserRole, error) {
	if secret == "" {
		return models.NilID, "", ErrMissingJWTSecret
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.NilID, "", err
	}
	if !token.Valid {
		return models.NilID, "", errors.New("invalid token")
	}

	id, err := models.ParseID(claims.ID)
	if err != nil {
		return models.NilID, "", fmt.Errorf("invalid subject in token: %w", err)
	}
	return id, models.UserRole(claims.Role), nil
}
