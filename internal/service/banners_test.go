package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/furnishing_catalog/internal/transport"
)

func TestBannerService_CRUD(t *testing.T) {
	t.Parallel()

	svc := &BannerService{Repo: newTestRepo(t)}
	ctx := context.Background()

	shown, err := svc.Create(ctx, transport.BannerRequest{Title: ptr("Festive"), ImageURL: ptr("https://cdn.example.com/b.jpg")})
	require.NoError(t, err)
	assert.True(t, shown.IsActive)
	_, err = svc.Create(ctx, transport.BannerRequest{Title: ptr("Draft"), IsActive: ptr(false)})
	require.NoError(t, err)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Festive", active[0].Title)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	updated, err := svc.Update(ctx, shown.ID, transport.BannerRequest{Subtitle: ptr("Up to 30% off")})
	require.NoError(t, err)
	assert.Equal(t, "Festive", updated.Title)
	assert.Equal(t, "Up to 30% off", updated.Subtitle)

	require.NoError(t, svc.Delete(ctx, shown.ID))
	assert.ErrorIs(t, svc.Delete(ctx, shown.ID), ErrNotFound)
	_, err = svc.Update(ctx, shown.ID, transport.BannerRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}
