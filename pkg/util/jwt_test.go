package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-testing"

func TestGenerateAccessToken(t *testing.T) {
	tests := []struct {
		name       string
		username   string
		businessID uint
		expiry     time.Duration
	}{
		{
			name:       "Valid token generation",
			username:   "alice",
			businessID: 1,
			expiry:     60 * time.Minute,
		},
		{
			name:       "Another business",
			username:   "bob",
			businessID: 42,
			expiry:     15 * time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateAccessToken(tt.username, tt.businessID, testSecret, tt.expiry)
			require.NoError(t, err)
			require.NotNil(t, token)
			assert.NotEmpty(t, token.AccessToken)
			assert.Equal(t, "bearer", token.TokenType)
		})
	}
}

func TestValidateToken(t *testing.T) {
	token, err := GenerateAccessToken("alice", 7, testSecret, 60*time.Minute)
	require.NoError(t, err)

	claims, err := ValidateToken(token.AccessToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, uint(7), claims.BusinessID)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateAccessToken("alice", 7, testSecret, 60*time.Minute)
	require.NoError(t, err)

	claims, err := ValidateToken(token.AccessToken, "a-different-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestValidateToken_Expired(t *testing.T) {
	token, err := GenerateAccessToken("alice", 7, testSecret, -time.Minute)
	require.NoError(t, err)

	claims, err := ValidateToken(token.AccessToken, testSecret)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Nil(t, claims)
}

func TestValidateToken_Malformed(t *testing.T) {
	claims, err := ValidateToken("not-a-jwt", testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestValidateToken_MissingBusinessID(t *testing.T) {
	// A token minted without a business id must be rejected outright,
	// not treated as some global scope.
	token, err := GenerateAccessToken("alice", 0, testSecret, 60*time.Minute)
	require.NoError(t, err)

	claims, err := ValidateToken(token.AccessToken, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}
