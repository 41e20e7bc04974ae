package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TTL is how long a signed credential stays valid.
const TTL = 7 * 24 * time.Hour

// Sign issues the bearer credential handed out at login and extend.
func Sign(userID uint, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(TTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

// SignExpired issues an already-expired credential. Only tests use it
// to exercise the extend flow.
func SignExpired(userID uint, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(-time.Hour).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}
