package service

import (
	"context"
	"strings"

	"github.com/Skotchmaster/furnishing_catalog/internal/models"
	"github.com/Skotchmaster/furnishing_catalog/internal/repo"
	"github.com/Skotchmaster/furnishing_catalog/internal/transport"
)

type BannerService struct {
	Repo *repo.GormRepo
}

const bannerNotFound = "Banner not found"

func (s *BannerService) Create(ctx context.Context, req transport.BannerRequest) (*models.Banner, error) {
	b := models.Banner{IsActive: true}
	applyBanner(&b, req)
	return s.Repo.CreateBanner(ctx, &b)
}

func (s *BannerService) ListActive(ctx context.Context) ([]models.Banner, error) {
	return s.Repo.ListBanners(ctx, true)
}

func (s *BannerService) ListAll(ctx context.Context) ([]models.Banner, error) {
	return s.Repo.ListBanners(ctx, false)
}

func (s *BannerService) Update(ctx context.Context, id string, req transport.BannerRequest) (*models.Banner, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}
	b, err := s.Repo.GetBanner(ctx, id)
	if err != nil {
		return nil, storeErr(err, bannerNotFound, "")
	}
	applyBanner(b, req)
	if err := s.Repo.SaveBanner(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Delete removes the banner row outright.
func (s *BannerService) Delete(ctx context.Context, id string) error {
	id, err := parseID(id)
	if err != nil {
		return err
	}
	return storeErr(s.Repo.DeleteBanner(ctx, id), bannerNotFound, "")
}

func applyBanner(b *models.Banner, req transport.BannerRequest) {
	if req.Title != nil {
		b.Title = strings.TrimSpace(*req.Title)
	}
	if req.Subtitle != nil {
		b.Subtitle = strings.TrimSpace(*req.Subtitle)
	}
	if req.Category != nil {
		b.Category = strings.TrimSpace(*req.Category)
	}
	if req.ImageURL != nil {
		b.ImageURL = *req.ImageURL
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}
}
