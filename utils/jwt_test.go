package utils

import (
	"testing"

	"github.com/jkate0000007/eve-platform/models"

	"github.com/stretchr/testify/assert"
)

// Test de l'aller-retour génération/décodage d'un JWT
func TestGenerateAndDecodeJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT(models.User{ID: "user-uuid-1", Role: models.CreatorRole}, 1)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := DecodeJWT(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-uuid-1", claims["user_id"])
	assert.Equal(t, "CREATOR", claims["role"])
}

// Test du décodage d'un token expiré (cas d'échec)
func TestDecodeJWT_Expired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT(models.User{ID: "user-uuid-1", Role: models.FanRole}, -1)
	assert.NoError(t, err)

	_, err = DecodeJWT(token)
	assert.Error(t, err)
}

// Test du décodage avec un mauvais secret (cas d'échec)
func TestDecodeJWT_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := GenerateJWT(models.User{ID: "user-uuid-1", Role: models.FanRole}, 1)
	assert.NoError(t, err)

	t.Setenv("JWT_SECRET", "autre-secret")
	_, err = DecodeJWT(token)
	assert.Error(t, err)
}
