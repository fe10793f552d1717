package utils

import (
	"time"

	"digitalstore_back_end/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL matches the storefront session length.
const TokenTTL = 30 * 24 * time.Hour

func GenerateJWT(user *models.User, secret string) (string, error) {
	claims := jwt.MapClaims{
		"id":   user.ID.Hex(),
		"role": user.Role,
		"exp":  time.Now().Add(TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
