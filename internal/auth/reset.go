package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultResetTokenTTL = 2 * time.Hour

	resetTokenSubject = "password-reset"
)

var (
	ErrResetTokenInvalid = errors.New("reset token invalid")
	ErrResetTokenExpired = errors.New("reset token expired")

	errResetSecretMissing = errors.New("reset token secret not configured")
)

// ResetClaims is the payload of an admin-issued password-reset token.
type ResetClaims struct {
	UserID int64  `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// NewResetToken mints a short-lived HS256 token that lets the holder set a
// new password for the given account.
func NewResetToken(secret []byte, userID int64, email string, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errResetSecretMissing
	}
	if ttl <= 0 {
		ttl = DefaultResetTokenTTL
	}
	now := time.Now()
	claims := ResetClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   resetTokenSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseResetToken verifies the signature and expiry of a reset token and
// returns its claims. Expired tokens are reported as ErrResetTokenExpired so
// the handler can tell the user to ask for a fresh link.
func ParseResetToken(secret []byte, token string) (*ResetClaims, error) {
	if len(secret) == 0 {
		return nil, errResetSecretMissing
	}
	parsed, err := jwt.ParseWithClaims(token, &ResetClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrResetTokenExpired
		}
		return nil, ErrResetTokenInvalid
	}
	claims, ok := parsed.Claims.(*ResetClaims)
	if !ok || !parsed.Valid || claims.UserID == 0 || claims.Subject != resetTokenSubject {
		return nil, ErrResetTokenInvalid
	}
	return claims, nil
}
