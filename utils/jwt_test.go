package utils

import (
	"testing"
	"time"

	"clinixsphere/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndExtractClaims(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	t.Cleanup(func() { config.AppConfig.JWTSecret = "" })

	token, err := GenerateToken("u1", "doctor", "Dr Who", time.Hour)
	require.NoError(t, err)

	claims, err := ExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, &Claims{UserID: "u1", Role: "doctor", Name: "Dr Who"}, claims)
}

func TestExtractClaims_Rejects(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	t.Cleanup(func() { config.AppConfig.JWTSecret = "" })

	expired, err := GenerateToken("u1", "doctor", "", -time.Minute)
	require.NoError(t, err)
	_, err = ExtractClaims(expired)
	assert.Error(t, err)

	_, err = ExtractClaims("garbage")
	assert.Error(t, err)

	signed, err := GenerateToken("u1", "doctor", "", time.Hour)
	require.NoError(t, err)
	config.AppConfig.JWTSecret = "rotated"
	_, err = ExtractClaims(signed)
	assert.Error(t, err, "signature from another secret")
}

func TestSecretRequiredInProduction(t *testing.T) {
	config.AppConfig.Env = "production"
	t.Cleanup(func() { config.AppConfig.Env = "" })

	_, err := GenerateToken("u1", "doctor", "", time.Hour)
	assert.Error(t, err)
}
