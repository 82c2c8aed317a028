package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-jwt-secret")

func TestSignAdminToken_SetsExpectedClaims(t *testing.T) {
	t.Parallel()

	token, exp, err := SignAdminToken("69041cbd2d6caf07cf4fcb11", "admin", time.Hour, secret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := AdminClaimsFromToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "69041cbd2d6caf07cf4fcb11", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestAdminClaimsFromToken_Rejects(t *testing.T) {
	t.Parallel()

	token, _, err := SignAdminToken("id", "admin", time.Hour, secret)
	require.NoError(t, err)

	_, err = AdminClaimsFromToken(token, []byte("other-secret"))
	assert.Error(t, err)

	expired, _, err := SignAdminToken("id", "admin", -time.Minute, secret)
	require.NoError(t, err)
	_, err = AdminClaimsFromToken(expired, secret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = AdminClaimsFromToken("not-a-jwt", secret)
	assert.Error(t, err)
}
