package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"filmledger/internal/models"
)

// Claims carries the authenticated username and its role names. The
// middleware rebuilds a typed Principal from these on every request.
type Claims struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// Principal converts the claims back into the typed role set.
func (c *Claims) Principal() models.Principal {
	roles := make([]models.RoleName, 0, len(c.Roles))
	for _, r := range c.Roles {
		roles = append(roles, models.RoleName(r))
	}
	return models.NewPrincipal(c.Username, roles...)
}

func GenerateJWT(user *models.User, secret string) (string, error) {
	roles := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, string(r.Name))
	}

	claims := Claims{
		Username: user.Username,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseJWT parses and validates a token, rejecting non-HMAC algorithms.
func ParseJWT(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	return claims, nil
}
