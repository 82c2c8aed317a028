package transport

import "github.com/Skotchmaster/furnishing_catalog/internal/models"

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreateAdminRequest struct {
	Username string `json:"username"  validate:"required,min=3,max=50"`
	Password string `json:"password"  validate:"required,min=6"`
	FullName string `json:"full_name"`
	Email    string `json:"email"     validate:"omitempty,email"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=6"`
}

// ProductRequest is used for both create and update; nil fields are left untouched on update.
type ProductRequest struct {
	Title           *string          `json:"title"`
	Slug            *string          `json:"slug"`
	Description     *string          `json:"description"`
	CategoryID      *string          `json:"category_id"`
	Category        *string          `json:"category"`
	Subcategory     *string          `json:"subcategory"`
	OriginalPrice   *float64         `json:"original_price"    validate:"omitempty,gte=0"`
	DiscountedPrice *float64         `json:"discounted_price"  validate:"omitempty,gte=0"`
	Featured        *bool            `json:"featured"`
	Images          *[]string        `json:"images"`
	MaterialUsed    *[]string        `json:"material_used"`
	ColorAndTexture *[]string        `json:"color_and_texture"`
	FAQs            *[]models.FAQ    `json:"faqs"`
	ProductGuide    *string          `json:"product_guide"`
	HowToUse        *models.HowToUse `json:"how_to_use"`
	IsActive        *bool            `json:"is_active"`
}

type ProductFilterQuery struct {
	Category    string
	Subcategory string
	Materials   string
	MinPrice    string
	MaxPrice    string
	Search      string
	Page        string
	Limit       string
	Sort        string
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int64 `json:"pages"`
}

type CategoryRequest struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	Subcategories *[]string `json:"subcategories"`
	ImageURL      *string   `json:"image_url"`
	DisplayOrder  *int      `json:"display_order"`
	IsActive      *bool     `json:"is_active"`
}

type SubcategoryRequest struct {
	Subcategory string `json:"subcategory"`
}

type BannerRequest struct {
	Title    *string `json:"title"`
	Subtitle *string `json:"subtitle"`
	Category *string `json:"category"`
	ImageURL *string `json:"image_url"`
	IsActive *bool   `json:"is_active"`
}

type EnquiryItemRequest struct {
	ProductID            string   `json:"product_id"`
	Title                string   `json:"title"`
	SelectedColorTexture string   `json:"selected_color_texture"`
	Quantity             int      `json:"quantity"`
	PriceAtTime          *float64 `json:"price_at_time"`
}

type EnquiryRequest struct {
	UserName    string               `json:"user_name"`
	UserPhone   string               `json:"user_phone"`
	UserEmail   string               `json:"user_email"`
	UserAddress string               `json:"user_address"`
	Items       []EnquiryItemRequest `json:"items"`
}

type EnquiryStatusRequest struct {
	Status     string `json:"status"`
	AdminNotes string `json:"admin_notes"`
}
