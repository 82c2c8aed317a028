package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

const (
	EnquiryPending   = "pending"
	EnquiryContacted = "contacted"
	EnquiryConverted = "converted"
	EnquiryCancelled = "cancelled"
)

var EnquiryStatuses = []string{EnquiryPending, EnquiryContacted, EnquiryConverted, EnquiryCancelled}

// Base carries the object-id shaped primary key and timestamps shared by every collection.
type Base struct {
	ID        string    `gorm:"primaryKey;size:24"  json:"_id"`
	CreatedAt time.Time `gorm:"index"               json:"createdAt"`
	UpdatedAt time.Time `                           json:"updatedAt"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = primitive.NewObjectID().Hex()
	}
	return nil
}

type Admin struct {
	Base
	Username     string     `gorm:"uniqueIndex;not null"   json:"username"`
	PasswordHash string     `gorm:"not null"               json:"-"`
	FullName     string     `                              json:"full_name,omitempty"`
	Email        string     `                              json:"email,omitempty"`
	IsActive     bool       `gorm:"not null"               json:"is_active"`
	LastLogin    *time.Time `                              json:"last_login,omitempty"`
}

type Category struct {
	Base
	Name          string   `gorm:"uniqueIndex;not null"        json:"name"`
	Description   string   `                                   json:"description,omitempty"`
	Subcategories []string `gorm:"type:text;serializer:json"   json:"subcategories"`
	ImageURL      string   `                                   json:"image_url,omitempty"`
	DisplayOrder  int      `gorm:"not null;default:0"          json:"display_order"`
	IsActive      bool     `gorm:"not null"                    json:"is_active"`
}

type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type HowToUse struct {
	Title  string   `json:"title"`
	Points []string `json:"points"`
}

type Product struct {
	Base
	Title           string   `gorm:"index"                       json:"title"`
	Slug            string   `gorm:"index"                       json:"slug"`
	Description     string   `                                   json:"description"`
	CategoryID      *string  `gorm:"size:24;index"               json:"category_id"`
	Category        string   `gorm:"index"                       json:"category"`
	Subcategory     string   `gorm:"index"                       json:"subcategory"`
	OriginalPrice   *float64 `                                   json:"original_price"`
	DiscountedPrice *float64 `                                   json:"discounted_price"`
	Featured        bool     `gorm:"not null;default:false"      json:"featured"`
	Images          []string `gorm:"type:text;serializer:json"   json:"images"`
	MaterialUsed    []string `gorm:"type:text;serializer:json"   json:"material_used"`
	ColorAndTexture []string `gorm:"type:text;serializer:json"   json:"color_and_texture"`
	FAQs            []FAQ    `gorm:"type:text;serializer:json"   json:"faqs"`
	ProductGuide    string   `                                   json:"product_guide"`
	HowToUse        HowToUse `gorm:"type:text;serializer:json"   json:"how_to_use"`
	IsActive        bool     `gorm:"not null;index"              json:"is_active"`
}

type Banner struct {
	Base
	Title    string `                             json:"title,omitempty"`
	Subtitle string `                             json:"subtitle,omitempty"`
	Category string `                             json:"category,omitempty"`
	ImageURL string `                             json:"image_url,omitempty"`
	IsActive bool   `gorm:"not null"              json:"is_active"`
}

// ProductRef is the resolved view of an enquiry item's product reference.
type ProductRef struct {
	ID       string `json:"_id"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

type EnquiryItem struct {
	ProductID            *string     `json:"product_id,omitempty"`
	Product              *ProductRef `json:"product,omitempty"`
	Title                string      `json:"title"`
	SelectedColorTexture string      `json:"selected_color_texture,omitempty"`
	Quantity             int         `json:"quantity"`
	PriceAtTime          *float64    `json:"price_at_time,omitempty"`
}

type Enquiry struct {
	Base
	UserName    string        `gorm:"not null"                              json:"user_name"`
	UserPhone   string        `gorm:"not null"                              json:"user_phone"`
	UserEmail   string        `                                             json:"user_email,omitempty"`
	UserAddress string        `                                             json:"user_address,omitempty"`
	Items       []EnquiryItem `gorm:"type:text;serializer:json"             json:"items"`
	Status      string        `gorm:"not null;default:pending;index"        json:"status"`
	EmailSent   bool          `gorm:"not null;default:false"                json:"email_sent"`
	AdminNotes  string        `                                             json:"admin_notes,omitempty"`
}

func All() []any {
	return []any{&Admin{}, &Category{}, &Product{}, &Banner{}, &Enquiry{}}
}
