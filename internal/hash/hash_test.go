package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheck(t *testing.T) {
	h, err := HashPassword("Admin@123")
	require.NoError(t, err)
	assert.NotEqual(t, "Admin@123", h)

	assert.True(t, CheckPassword(h, "Admin@123"))
	assert.False(t, CheckPassword(h, "admin@123"))
	assert.False(t, CheckPassword("not-a-hash", "Admin@123"))
}
