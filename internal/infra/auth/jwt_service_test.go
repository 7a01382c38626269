package auth

import (
	"testing"
	"time"

	"easesupply/config"

	"github.com/stretchr/testify/assert"
)

func testConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = secret

	return cfg
}

func TestJWTService_ValidateSignedToken(t *testing.T) {
	secret := "test_access_secret_key_very_long_for_testing"

	svc, err := NewJWTService(testConfig(secret))
	assert.NoError(t, err)
	assert.NotNil(t, svc)

	tokenString, err := SignAccessToken("acct-42", secret, time.Minute*15)
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	token, err := svc.ValidateToken(tokenString, secret)
	assert.NoError(t, err)
	assert.NotNil(t, token)
	assert.True(t, token.Valid)

	subject, err := token.Claims.GetSubject()
	assert.NoError(t, err)
	assert.Equal(t, "acct-42", subject)
}

func TestJWTService_WrongSecret(t *testing.T) {
	secret := "test_access_secret_key_very_long_for_testing"

	svc, err := NewJWTService(testConfig(secret))
	assert.NoError(t, err)

	tokenString, err := SignAccessToken("acct-42", secret, time.Minute*15)
	assert.NoError(t, err)

	token, err := svc.ValidateToken(tokenString, "a_completely_different_secret")
	assert.Error(t, err)
	if token != nil {
		assert.False(t, token.Valid)
	}
}

func TestJWTService_ExpiredToken(t *testing.T) {
	secret := "test_access_secret_key_very_long_for_testing"

	svc, err := NewJWTService(testConfig(secret))
	assert.NoError(t, err)

	tokenString, err := SignAccessToken("acct-42", secret, -time.Minute)
	assert.NoError(t, err)

	token, err := svc.ValidateToken(tokenString, secret)
	assert.Error(t, err)
	if token != nil {
		assert.False(t, token.Valid)
	}
}

func TestJWTService_MalformedToken(t *testing.T) {
	secret := "test_access_secret_key_very_long_for_testing"

	svc, err := NewJWTService(testConfig(secret))
	assert.NoError(t, err)

	token, err := svc.ValidateToken("clearly-not-a-jwt-token-format", secret)
	assert.Error(t, err)
	assert.Nil(t, token)
}

func TestJWTService_EmptySecret(t *testing.T) {
	svc, err := NewJWTService(testConfig(""))
	assert.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "jwt access secret must be provided")
}
