package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	users := newTestUserService(store, "10000.00")

	user, err := users.Register(ctx, "alice", "Passw0rd!", "Passw0rd!")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Empty(t, user.PasswordHash)
	assert.Equal(t, "10000.00", user.Cash.StringFixed(2))
	assert.Equal(t, "10000.00", user.Total.StringFixed(2))

	stored, err := store.Users().GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "Passw0rd!", stored.PasswordHash)

	t.Run("duplicate", func(t *testing.T) {
		_, err := users.Register(ctx, "alice", "Passw0rd!", "Passw0rd!")
		requireInputError(t, err, ErrDuplicateUsername, "Username already taken")
	})

	t.Run("case sensitive", func(t *testing.T) {
		_, err := users.Register(ctx, "Alice", "Passw0rd!", "Passw0rd!")
		require.NoError(t, err)
	})
}

func TestRegisterRejections(t *testing.T) {
	users := newTestUserService(newTestStore(t), "10000.00")
	long := "Aa1!" + strings.Repeat("x", 80)

	cases := []struct {
		name, username, password, confirmation string
		kind                                   error
		message                                string
	}{
		{"blank username", "", "Passw0rd!", "Passw0rd!", ErrMissingField, "One or more fields left blank"},
		{"blank password", "bob", "", "Passw0rd!", ErrMissingField, "One or more fields left blank"},
		{"blank confirmation", "bob", "Passw0rd!", "", ErrMissingField, "One or more fields left blank"},
		{"mismatch", "bob", "Passw0rd!", "Passw0rd?", ErrPasswordMismatch, "Passwords do not match"},
		{"short", "bob", "Pw0!", "Pw0!", ErrPasswordPolicyViolation, "Password Must Have At Least 8 Characters"},
		{"short multibyte", "bob", "éééé1!", "éééé1!", ErrPasswordPolicyViolation, "Password Must Have At Least 8 Characters"},
		{"no special", "bob", "Passw0rdd", "Passw0rdd", ErrPasswordPolicyViolation, msgPasswordClasses},
		{"no digit", "bob", "Password!", "Password!", ErrPasswordPolicyViolation, msgPasswordClasses},
		{"no letter", "bob", "1234567!", "1234567!", ErrPasswordPolicyViolation, msgPasswordClasses},
		{"too long", "bob", long, long, ErrPasswordPolicyViolation, msgPasswordTooLong},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := users.Register(context.Background(), tc.username, tc.password, tc.confirmation)
			requireInputError(t, err, tc.kind, tc.message)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	users := newTestUserService(store, "10000.00")
	registered, err := users.Register(ctx, "alice", "Passw0rd!", "Passw0rd!")
	require.NoError(t, err)

	user, err := users.Authenticate(ctx, "alice", "Passw0rd!")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Empty(t, user.PasswordHash)

	_, err = users.Authenticate(ctx, "", "Passw0rd!")
	requireInputError(t, err, ErrMissingField, "must provide username")

	_, err = users.Authenticate(ctx, "alice", "")
	requireInputError(t, err, ErrMissingField, "must provide password")

	for _, creds := range [][2]string{{"alice", "wrong"}, {"nobody", "Passw0rd!"}, {"ALICE", "Passw0rd!"}} {
		_, err := users.Authenticate(ctx, creds[0], creds[1])
		require.ErrorIs(t, err, ErrAuthenticationFailed)
		ie, ok := AsInputError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusForbidden, ie.Status)
		assert.Equal(t, "invalid username and/or password", ie.Message)
	}
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	users := newTestUserService(store, "10000.00")
	user, err := users.Register(ctx, "alice", "Passw0rd!", "Passw0rd!")
	require.NoError(t, err)

	err = users.ChangePassword(ctx, user.ID, "", "N3wPassw0rd!", "N3wPassw0rd!")
	requireInputError(t, err, ErrMissingField, "Please Fill Up All Fields")

	err = users.ChangePassword(ctx, user.ID, "wrong", "N3wPassw0rd!", "N3wPassw0rd!")
	requireInputError(t, err, ErrAuthenticationFailed, "Incorrect Password")

	err = users.ChangePassword(ctx, user.ID, "Passw0rd!", "N3wPassw0rd!", "N3wPassw0rd?")
	requireInputError(t, err, ErrPasswordMismatch, "Passwords do not match")

	err = users.ChangePassword(ctx, user.ID, "Passw0rd!", "weakpass", "weakpass")
	requireInputError(t, err, ErrPasswordPolicyViolation, msgPasswordClasses)

	require.NoError(t, users.ChangePassword(ctx, user.ID, "Passw0rd!", "N3wPassw0rd!", "N3wPassw0rd!"))

	_, err = users.Authenticate(ctx, "alice", "Passw0rd!")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	_, err = users.Authenticate(ctx, "alice", "N3wPassw0rd!")
	assert.NoError(t, err)
}
