package service

import (
	"context"
	"io"

	"github.com/Skotchmaster/furnishing_catalog/internal/models"
)

// EnquiryEmail is the data rendered into the owner notification.
type EnquiryEmail struct {
	EnquiryID   string
	UserName    string
	UserPhone   string
	UserEmail   string
	UserAddress string
	Items       []models.EnquiryItem
}

type Mailer interface {
	SendEnquiry(ctx context.Context, data EnquiryEmail) error
}

// Runner executes detached work; *ants.Pool satisfies it.
type Runner interface {
	Submit(task func()) error
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

type ProductIndexer interface {
	IndexProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id string) error
	SearchProducts(ctx context.Context, query string, offset, limit int) (int64, []string, error)
}

type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type ImageProcessor interface {
	// Compress reads the image at src and writes a bounded JPEG to dst.
	Compress(src, dst string) error
}
