package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/furnishing_catalog/internal/models"
)

func (r *GormRepo) CreateBanner(ctx context.Context, b *models.Banner) (*models.Banner, error) {
	if err := r.DB.WithContext(ctx).Create(b).Error; err != nil {
		return nil, err
	}
	return b, nil
}

func (r *GormRepo) GetBanner(ctx context.Context, id string) (*models.Banner, error) {
	var b models.Banner
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *GormRepo) ListBanners(ctx context.Context, activeOnly bool) ([]models.Banner, error) {
	q := r.DB.WithContext(ctx).Model(&models.Banner{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var items []models.Banner
	if err := q.Order("created_at DESC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) SaveBanner(ctx context.Context, b *models.Banner) error {
	return r.DB.WithContext(ctx).Save(b).Error
}

func (r *GormRepo) DeleteBanner(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Banner{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
