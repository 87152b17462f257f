package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	sessions := NewSessions("secret", time.Hour)

	token, err := sessions.Issue(42)
	require.NoError(t, err)

	id, err := sessions.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestTokensAreUnique(t *testing.T) {
	sessions := NewSessions("secret", time.Hour)
	a, err := sessions.Issue(1)
	require.NoError(t, err)
	b, err := sessions.Issue(1)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestParseRejects(t *testing.T) {
	sessions := NewSessions("secret", time.Hour)
	token, err := sessions.Issue(7)
	require.NoError(t, err)

	t.Run("empty", func(t *testing.T) {
		_, err := sessions.Parse("")
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := sessions.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("other secret", func(t *testing.T) {
		_, err := NewSessions("other", time.Hour).Parse(token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("expired", func(t *testing.T) {
		later := NewSessions("secret", time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := later.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})
}

func TestDefaultTTL(t *testing.T) {
	assert.Equal(t, 24*time.Hour, NewSessions("s", 0).ttl)
}
