package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/furnishing_catalog/internal/models"
)

func (r *GormRepo) CreateCategory(ctx context.Context, cat *models.Category) (*models.Category, error) {
	if err := r.DB.WithContext(ctx).Create(cat).Error; err != nil {
		return nil, err
	}
	return cat, nil
}

func (r *GormRepo) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	var cat models.Category
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *GormRepo) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	var cat models.Category
	if err := r.DB.WithContext(ctx).Where("name = ?", name).First(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *GormRepo) ListCategories(ctx context.Context, includeInactive bool) ([]models.Category, error) {
	q := r.DB.WithContext(ctx).Model(&models.Category{})
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	var items []models.Category
	if err := q.Order("display_order ASC, name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) SaveCategory(ctx context.Context, cat *models.Category) error {
	return r.DB.WithContext(ctx).Save(cat).Error
}

// SaveCategoryRenaming stores cat and rewrites the denormalized category name
// of every product still carrying oldName. Repeating it is harmless.
func (r *GormRepo) SaveCategoryRenaming(ctx context.Context, cat *models.Category, oldName string) (int64, error) {
	var renamed int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(cat).Error; err != nil {
			return err
		}
		res := tx.Model(&models.Product{}).Where("category = ?", oldName).Update("category", cat.Name)
		if res.Error != nil {
			return res.Error
		}
		renamed = res.RowsAffected
		return nil
	})
	return renamed, err
}

func (r *GormRepo) DeleteCategory(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
