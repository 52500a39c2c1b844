package jwt

import (
	"testing"

	"github.com/thechaitanyaanand/Minsoto/internal/config"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}

	tokenString, err := GenerateToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	token, err := gojwt.Parse(tokenString, func(token *gojwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(gojwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(42), claims["sub"])
	assert.Greater(t, claims["exp"], claims["iat"])
}

func TestGenerateTokenRejectsWrongSecret(t *testing.T) {
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}

	tokenString, err := GenerateToken(7)
	require.NoError(t, err)

	_, err = gojwt.Parse(tokenString, func(token *gojwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	assert.Error(t, err)
}
