package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret-at-least-32-chars-long"

func TestNewAuthenticator_EmptySecret(t *testing.T) {
	_, err := NewAuthenticator("")
	assert.Error(t, err)
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	a, err := NewAuthenticator(testSecret)
	require.NoError(t, err)

	token, err := a.Issue(42, "ada@example.com", "Ada", true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims := a.Verify(token)
	require.NotNil(t, claims)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "Ada", claims.UserName)
	assert.True(t, claims.IsPremiumUser)
}

func TestVerify_Absent(t *testing.T) {
	a, err := NewAuthenticator(testSecret)
	require.NoError(t, err)

	assert.Nil(t, a.Verify(""))
	assert.Nil(t, a.Verify("not-a-token"))
	assert.Nil(t, a.Verify("aaaa.bbbb.cccc"))
}

func TestVerify_Expired(t *testing.T) {
	a, err := NewAuthenticator(testSecret)
	require.NoError(t, err)
	a.ttl = -time.Minute

	token, err := a.Issue(1, "a@x.com", "A", false)
	require.NoError(t, err)

	assert.Nil(t, a.Verify(token))
}

func TestVerify_WrongSecret(t *testing.T) {
	a, err := NewAuthenticator(testSecret)
	require.NoError(t, err)
	b, err := NewAuthenticator("a-completely-different-32-char-secret!!")
	require.NoError(t, err)

	token, err := a.Issue(1, "a@x.com", "A", false)
	require.NoError(t, err)

	assert.Nil(t, b.Verify(token))
}

func TestVerify_TamperedSignature(t *testing.T) {
	a, err := NewAuthenticator(testSecret)
	require.NoError(t, err)

	token, err := a.Issue(7, "b@x.com", "B", false)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Mutate every character position of the signature segment in turn;
	// each single-character change must invalidate the token.
	sig := parts[2]
	for i := 0; i < len(sig); i++ {
		mutated := []byte(sig)
		if mutated[i] == 'A' {
			mutated[i] = 'B'
		} else {
			mutated[i] = 'A'
		}
		tampered := parts[0] + "." + parts[1] + "." + string(mutated)
		assert.Nil(t, a.Verify(tampered), "position %d", i)
	}
}

func TestVerify_TamperedPayload(t *testing.T) {
	a, err := NewAuthenticator(testSecret)
	require.NoError(t, err)

	legit, err := a.Issue(7, "b@x.com", "B", false)
	require.NoError(t, err)
	other, err := a.Issue(8, "c@x.com", "C", true)
	require.NoError(t, err)

	legitParts := strings.Split(legit, ".")
	otherParts := strings.Split(other, ".")

	// Splicing another token's payload under the original signature must fail.
	spliced := legitParts[0] + "." + otherParts[1] + "." + legitParts[2]
	assert.Nil(t, a.Verify(spliced))
}
