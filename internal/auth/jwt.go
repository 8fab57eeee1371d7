package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Myseie/ShopInventory/internal/models"
)

var jwtSecret = []byte("super-secret-key") // overridden from config at startup

// SetSecret replaces the signing key. Called once during startup.
func SetSecret(secret string) {
	if secret != "" {
		jwtSecret = []byte(secret)
	}
}

func GenerateToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(15 * time.Minute).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ParseToken(tokenStr string) (*jwt.Token, error) {
	return jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return jwtSecret, nil
	})
}

// TokenClaims parses the token from an Authorization header value.
func TokenClaims(authorization string) (*jwt.Token, jwt.MapClaims, error) {
	if !strings.HasPrefix(authorization, "Bearer ") {
		return nil, nil, errors.New("missing or invalid token")
	}

	token, err := ParseToken(strings.TrimPrefix(authorization, "Bearer "))
	if err != nil || !token.Valid {
		return nil, nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, nil, errors.New("invalid token claims")
	}
	return token, claims, nil
}
