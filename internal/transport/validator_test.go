package transport

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator(t *testing.T) {
	v := NewValidator()

	require.NoError(t, v.Validate(&LoginRequest{Username: "admin", Password: "x"}))

	err := v.Validate(&LoginRequest{Password: "x"})
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Equal(t, "username is required", he.Message)

	err = v.Validate(&CreateAdminRequest{Username: "boss", Password: "123"})
	require.ErrorAs(t, err, &he)
	assert.Equal(t, "password must be at least 6 characters", he.Message)

	err = v.Validate(&CreateAdminRequest{Username: "boss", Password: "123456", Email: "nope"})
	require.ErrorAs(t, err, &he)
	assert.Equal(t, "Please enter a valid email address", he.Message)

	neg := -1.0
	err = v.Validate(&ProductRequest{OriginalPrice: &neg})
	require.ErrorAs(t, err, &he)
	assert.Equal(t, "original_price must be greater than or equal to 0", he.Message)
}
