package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hashed)

	assert.True(t, CheckPassword(hashed, "s3cret"))
	assert.False(t, CheckPassword(hashed, "wrong"))
	assert.False(t, CheckPassword("", "s3cret"))
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("s3cret")
	require.NoError(t, err)
	second, err := HashPassword("s3cret")
	require.NoError(t, err)

	// Each hash carries its own salt
	assert.NotEqual(t, first, second)
}
