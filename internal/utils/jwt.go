// Package utils provides token issuing/verification and password hashing
// helpers shared by the auth handlers and middleware.
package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer and Audience scope every token this service signs; verification
// rejects tokens minted for anything else.
const (
	Issuer   = "smart-inventory-ai"
	Audience = "smart-inventory-users"
)

// AccessClaims is the payload of a short-lived access token.  It carries
// enough identity for request handling without a user lookup.
type AccessClaims struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// RefreshClaims is the payload of a long-lived refresh token: only the user
// id, nothing a leaked token could disclose.
type RefreshClaims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// AccessToken bundles a signed access JWT with its expiry.
type AccessToken struct {
	Token string    `json:"token"`
	Exp   time.Time `json:"expires"`
}

// RefreshToken bundles the raw refresh JWT handed to the client as a
// cookie.  The database only ever stores its SHA-256 hash.
type RefreshToken struct {
	Raw string
	Exp time.Time
}

func registered(exp time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Issuer:    Issuer,
		Audience:  jwt.ClaimStrings{Audience},
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
	}
}

// NewAccessToken signs an HS256 access token for the user.
func NewAccessToken(secret string, userID int64, name, email string, ttlMin int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessClaims{
		UserID:           userID,
		Name:             name,
		Email:            email,
		RegisteredClaims: registered(exp),
	})
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// NewRefreshToken signs an HS256 refresh token carrying only the user id.
func NewRefreshToken(secret string, userID int64, ttlDays int) (RefreshToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlDays) * 24 * time.Hour)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, RefreshClaims{
		UserID:           userID,
		RegisteredClaims: registered(exp),
	})
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return RefreshToken{}, err
	}
	return RefreshToken{Raw: signed, Exp: exp}, nil
}

// ParseAccessToken verifies an access token's signature, expiry, issuer and
// audience and returns its claims.
func ParseAccessToken(secret, raw string) (AccessClaims, error) {
	var claims AccessClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(Audience),
	)
	if err != nil {
		return AccessClaims{}, err
	}
	return claims, nil
}

// VerifyRefreshToken verifies a refresh token's signature, expiry, issuer
// and audience.  The hash lookup against the store is a separate check;
// both must pass before a new access token is minted.
func VerifyRefreshToken(secret, raw string) (RefreshClaims, error) {
	var claims RefreshClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(Audience),
	)
	if err != nil {
		return RefreshClaims{}, err
	}
	return claims, nil
}

// HashRefreshRaw returns the SHA-256 hex digest of a raw refresh token.
// Only this digest is persisted, so a leaked database cannot replay
// sessions.
func HashRefreshRaw(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
