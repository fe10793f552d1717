package utils_test

import (
	"testing"
	"time"

	"digitalstore_back_end/internal/models"
	"digitalstore_back_end/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGenerateJWTClaims(t *testing.T) {
	user := &models.User{
		ID:   primitive.NewObjectID(),
		Role: models.RoleAdmin,
	}

	signed, err := utils.GenerateJWT(user, "test-secret")
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, user.ID.Hex(), claims["id"])
	assert.Equal(t, models.RoleAdmin, claims["role"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(utils.TokenTTL), exp.Time, time.Minute)
}
