package server

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/hemahemapathi/health-management-client/users"
)

// tokenManager mints and verifies the stub backend's HS256 bearer tokens.
type tokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func newTokenManager(secret string, ttl time.Duration) *tokenManager {
	return &tokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (tm *tokenManager) issue(user *users.User) (string, error) {
	now := tm.now()
	claims := sessionClaims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", errors.Wrap(err, "[tokenManager.issue] SignedString")
	}
	return signed, nil
}

// verify returns the user ID and role carried by a valid token.
func (tm *tokenManager) verify(raw string) (string, users.RoleType, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(tm.now))
	if err != nil {
		return "", "", errors.Wrap(err, "[tokenManager.verify] ParseWithClaims")
	}
	if !token.Valid {
		return "", "", errors.New("[tokenManager.verify] invalid token")
	}

	role, err := users.ParseRole(claims.Role)
	if err != nil {
		return "", "", errors.Wrap(err, "[tokenManager.verify] role claim")
	}
	return claims.Subject, role, nil
}
