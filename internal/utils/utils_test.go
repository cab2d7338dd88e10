package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("user-1", "secret", time.Hour, "pension-management-app", time.Now())
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "pension-management-app", claims.Issuer)

	_, err = ParseAndValidateJWT(token, "other-secret")
	assert.Error(t, err, "Wrong secret must fail")
}

func TestParseJWT_Expired(t *testing.T) {
	token, err := GenerateJWT("user-1", "secret", time.Minute, "issuer", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(token, "secret")
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestIsStrongPassword(t *testing.T) {
	assert.True(t, IsStrongPassword("Str0ng-pass"))
	assert.True(t, IsStrongPassword("Pässw0rd"))
	assert.False(t, IsStrongPassword("long-enough"))
	assert.False(t, IsStrongPassword("NOLOWER1!"))
	assert.False(t, IsStrongPassword("noupper1!"))
	assert.False(t, IsStrongPassword("NoDigits!"))
	assert.False(t, IsStrongPassword("NoSpecial1"))
}

func TestFormatAmount(t *testing.T) {
	d := decimal.RequireFromString("1000")
	assert.Equal(t, "1000.00", FormatAmount(d))
	d = decimal.RequireFromString("12.345")
	assert.Equal(t, "12.35", FormatAmount(d))
}
