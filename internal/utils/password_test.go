package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$"))
	require.NotEqual(t, "s3cret-pass", hash)

	ok, err := VerifyPassword("s3cret-pass", hash)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = VerifyPassword("wrong-pass", hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	h1, err := HashPassword("same-password")
	require.NoError(t, err)
	h2, err := HashPassword("same-password")
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}

func TestVerifyPasswordInvalidHash(t *testing.T) {
	_, err := VerifyPassword("whatever", "pas-un-hash")
	require.Error(t, err)

	_, err = VerifyPassword("whatever", "$2a$10$abcdefghijklmnopqrstuv")
	require.Error(t, err)
}
