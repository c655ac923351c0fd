// SPDX-License-Identifier: GPL-3.0-only

package crypto

import (
	"errors"
	"inkwell-server/commons"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func jwtSecret() []byte {
	return []byte(commons.GetEnv("JWT_SECRET", "default_very_secret_key"))
}

// IssueSessionToken signs a time-limited session token for the given
// identity. The token is verifiable offline, without a database round trip.
func IssueSessionToken(username string, userID uint, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": username,
		"uid": userID,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	})
	return token.SignedString(jwtSecret())
}

// ParseSessionToken verifies the signature and expiry of a session token and
// returns the identity it names.
func ParseSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("malformed session claims")
	}

	username, ok := claims["sub"].(string)
	if !ok || username == "" {
		return nil, errors.New("malformed session claims")
	}
	uid, ok := claims["uid"].(float64)
	if !ok || uid <= 0 {
		return nil, errors.New("malformed session claims")
	}

	return &SessionClaims{Username: username, UserID: uint(uid)}, nil
}
