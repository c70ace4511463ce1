package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42)
	require.NoError(t, err)

	userID, err := ParseToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, userID)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestVerificationTokenRoundTrip(t *testing.T) {
	token, err := GenerateVerificationToken("joedoe")
	require.NoError(t, err)

	username, err := ParseVerificationToken(token)
	require.NoError(t, err)
	assert.Equal(t, "joedoe", username)
}

func TestVerificationTokenRejectsAccessToken(t *testing.T) {
	// An access token lacks the email_confirmation type claim
	token, err := GenerateToken(42)
	require.NoError(t, err)

	_, err = ParseVerificationToken(token)
	assert.Error(t, err)
}
