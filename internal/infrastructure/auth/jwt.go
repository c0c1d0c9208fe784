// Package auth validates the bearer tokens minted by the identity system.
// The portal does not issue sessions itself; it only verifies the shared
// secret and extracts the acting identity.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"quarters/internal/shared/authorization"
	"quarters/internal/shared/biztime"
)

type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret           []byte
	accessExpMinutes int
}

func NewJWTService(secret string, accessExpMinutes int) *JWTService {
	return &JWTService{
		secret:           []byte(secret),
		accessExpMinutes: accessExpMinutes,
	}
}

// Generate mints a token for local development and tests. Production tokens
// come from the identity system using the same secret and claims.
func (s *JWTService) Generate(userID uint, role authorization.Role) (string, error) {
	now := biztime.NowUTC()
	claims := &Claims{
		UserID: userID,
		Role:   role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.accessExpMinutes) * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate parses the token and returns the actor it asserts.
func (s *JWTService) Validate(tokenString string) (authorization.Actor, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return authorization.Actor{}, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return authorization.Actor{}, fmt.Errorf("invalid token claims")
	}

	role, ok := authorization.NewRole(claims.Role)
	if !ok {
		return authorization.Actor{}, fmt.Errorf("unknown role in token: %s", claims.Role)
	}
	if claims.UserID == 0 {
		return authorization.Actor{}, fmt.Errorf("token carries no user ID")
	}

	return authorization.Actor{ID: claims.UserID, Role: role}, nil
}
