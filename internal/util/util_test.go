package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		page      string
		limit     string
		wantPage  int
		wantLimit int
	}{
		{name: "defaults", page: "", limit: "", wantPage: 1, wantLimit: DefaultPageSize},
		{name: "explicit", page: "2", limit: "10", wantPage: 2, wantLimit: 10},
		{name: "negative page", page: "-3", limit: "10", wantPage: 1, wantLimit: 10},
		{name: "garbage", page: "abc", limit: "xyz", wantPage: 1, wantLimit: DefaultPageSize},
		{name: "limit too big", page: "1", limit: "500", wantPage: 1, wantLimit: MaxPageSize},
		{name: "limit negative", page: "1", limit: "-4", wantPage: 1, wantLimit: 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			page, limit := ValidatePagination(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestCalculateAndTotalPages(t *testing.T) {
	offset, limit := Calculate(2, 10)
	assert.Equal(t, 10, offset)
	assert.Equal(t, 10, limit)

	assert.EqualValues(t, 3, TotalPages(25, 10))
	assert.EqualValues(t, 0, TotalPages(0, 10))
	assert.EqualValues(t, 1, TotalPages(10, 10))
}

func TestIsObjectIDHex(t *testing.T) {
	assert.True(t, IsObjectIDHex("69041cbd2d6caf07cf4fcb11"))
	assert.True(t, IsObjectIDHex("69041CBD2D6CAF07CF4FCB11"))
	assert.False(t, IsObjectIDHex("royal-velvet-curtain-1234"))
	assert.False(t, IsObjectIDHex("69041cbd2d6caf07cf4fcb1"))
	assert.False(t, IsObjectIDHex("69041cbd2d6caf07cf4fcb1z"))
}

func TestNormalizeObjectID(t *testing.T) {
	id, ok := NormalizeObjectID("69041CBD2D6CAF07CF4FCB11")
	require.True(t, ok)
	assert.Equal(t, "69041cbd2d6caf07cf4fcb11", id)

	_, ok = NormalizeObjectID("not-an-id")
	assert.False(t, ok)
	_, ok = NormalizeObjectID("")
	assert.False(t, ok)
}

func TestValidatePhone(t *testing.T) {
	clean, err := ValidatePhone("98765 43210")
	require.NoError(t, err)
	assert.Equal(t, "9876543210", clean)

	clean, err = ValidatePhone("+91 (987) 654-3210")
	require.NoError(t, err)
	assert.Equal(t, "+919876543210", clean)

	_, err = ValidatePhone("")
	assert.ErrorIs(t, err, ErrPhoneRequired)

	_, err = ValidatePhone("12345")
	assert.ErrorIs(t, err, ErrPhoneInvalid)
}

func TestValidateEmail(t *testing.T) {
	email, err := ValidateEmail("  Jane.Doe@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "jane.doe@example.com", email)

	email, err = ValidateEmail("")
	require.NoError(t, err)
	assert.Empty(t, email)

	_, err = ValidateEmail("jane@example")
	assert.ErrorIs(t, err, ErrEmailInvalid)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "royal-velvet-curtain", Slugify("  Royal Velvet   Curtain! "))
	assert.Equal(t, "a-b", Slugify("a - b"))
}

func TestProductSlug(t *testing.T) {
	now := time.UnixMilli(1730000012345)
	assert.Equal(t, "ring-curtain-2345", ProductSlug("Ring Curtain", now))
}

func TestIsValidURL(t *testing.T) {
	assert.True(t, IsValidURL("https://cdn.example.com/products/a.jpg"))
	assert.False(t, IsValidURL("not a url"))
}
