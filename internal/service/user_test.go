package service

import (
	"testing"

	"github.com/mkarpenko/storefront/internal/config"
	"github.com/mkarpenko/storefront/internal/domain"
	"github.com/mkarpenko/storefront/internal/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRegisterAndLogin(t *testing.T) {
	store := memstore.New()
	users := NewUserService(store, &config.Config{PrivateKey: "test-key"})

	token, err := users.Register("Jane Doe", "jane@example.com", "janedoe", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// the stored password is a hash, never the plaintext
	user, err := store.UserByUsername("janedoe")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", user.Password)

	token, err = users.Login("janedoe", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = users.Login("janedoe", "wrong")
	assert.ErrorIs(t, err, domain.ErrIncorrectCredentials)

	_, err = users.Login("nobody", "s3cret")
	assert.ErrorIs(t, err, domain.ErrIncorrectCredentials)
}

func TestUserRegisterDuplicate(t *testing.T) {
	store := memstore.New()
	users := NewUserService(store, &config.Config{PrivateKey: "test-key"})

	_, err := users.Register("Jane Doe", "jane@example.com", "janedoe", "s3cret")
	require.NoError(t, err)

	_, err = users.Register("Jane Doe", "jane@example.com", "janedoe", "s3cret")
	assert.ErrorIs(t, err, domain.ErrUserExists)
}
