package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/furnishing_catalog/internal/models"
)

func (r *GormRepo) CreateEnquiry(ctx context.Context, e *models.Enquiry) (*models.Enquiry, error) {
	if err := r.DB.WithContext(ctx).Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

func (r *GormRepo) GetEnquiry(ctx context.Context, id string) (*models.Enquiry, error) {
	var e models.Enquiry
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *GormRepo) ListEnquiries(ctx context.Context) ([]models.Enquiry, error) {
	var items []models.Enquiry
	if err := r.DB.WithContext(ctx).Order("created_at DESC, id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) UpdateEnquiryStatus(ctx context.Context, id, status, notes string) (*models.Enquiry, error) {
	res := r.DB.WithContext(ctx).Model(&models.Enquiry{}).Where("id = ?", id).
		Updates(map[string]any{"status": status, "admin_notes": notes})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetEnquiry(ctx, id)
}

// MarkEnquiryEmailSent touches only the email_sent column so a concurrent
// status change is not overwritten.
func (r *GormRepo) MarkEnquiryEmailSent(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Model(&models.Enquiry{}).Where("id = ?", id).Update("email_sent", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
