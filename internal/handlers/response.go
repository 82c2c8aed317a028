package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/furnishing_catalog/internal/models"
	"github.com/Skotchmaster/furnishing_catalog/internal/service"
	"github.com/Skotchmaster/furnishing_catalog/internal/transport"
)

// Response is the envelope of every JSON answer.
type Response struct {
	Success    bool                  `json:"success"`
	Message    string                `json:"message,omitempty"`
	Data       any                   `json:"data,omitempty"`
	Pagination *transport.Pagination `json:"pagination,omitempty"`
}

func respond(c echo.Context, code int, msg string, data any) error {
	return c.JSON(code, Response{Success: true, Message: msg, Data: data})
}

// StatusFor maps a service error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail logs err under event and turns it into an echo.HTTPError carrying the
// service message.
func fail(l *slog.Logger, event string, err error) error {
	code := StatusFor(err)
	if code >= http.StatusInternalServerError {
		l.Error(event, "status", code, "error", err)
		return echo.NewHTTPError(code, err.Error()).SetInternal(err)
	}
	l.Warn(event, "status", code, "reason", err.Error())
	return echo.NewHTTPError(code, err.Error())
}

func bind(c echo.Context, l *slog.Logger, event string, req any) error {
	if err := c.Bind(req); err != nil {
		l.Warn(event, "status", http.StatusBadRequest, "reason", "bad_body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(req); err != nil {
		l.Warn(event, "status", http.StatusBadRequest, "reason", "validation", "error", err)
		return err
	}
	return nil
}

// ProductView is the product as served to clients: absent prices read 0 and
// absent lists read [].
type ProductView struct {
	ID              string          `json:"_id"`
	Title           string          `json:"title"`
	Slug            string          `json:"slug"`
	Description     string          `json:"description"`
	CategoryID      string          `json:"category_id"`
	Category        string          `json:"category"`
	Subcategory     string          `json:"subcategory"`
	OriginalPrice   float64         `json:"original_price"`
	DiscountedPrice float64         `json:"discounted_price"`
	Featured        bool            `json:"featured"`
	Images          []string        `json:"images"`
	MaterialUsed    []string        `json:"material_used"`
	ColorAndTexture []string        `json:"color_and_texture"`
	FAQs            []models.FAQ    `json:"faqs"`
	ProductGuide    string          `json:"product_guide"`
	HowToUse        models.HowToUse `json:"how_to_use"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func FormatProduct(p *models.Product) ProductView {
	v := ProductView{
		ID:              p.ID,
		Title:           p.Title,
		Slug:            p.Slug,
		Description:     p.Description,
		Category:        p.Category,
		Subcategory:     p.Subcategory,
		Featured:        p.Featured,
		Images:          orEmpty(p.Images),
		MaterialUsed:    orEmpty(p.MaterialUsed),
		ColorAndTexture: orEmpty(p.ColorAndTexture),
		FAQs:            p.FAQs,
		ProductGuide:    p.ProductGuide,
		HowToUse:        models.HowToUse{Title: p.HowToUse.Title, Points: orEmpty(p.HowToUse.Points)},
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.CategoryID != nil {
		v.CategoryID = *p.CategoryID
	}
	if p.OriginalPrice != nil {
		v.OriginalPrice = *p.OriginalPrice
	}
	if p.DiscountedPrice != nil {
		v.DiscountedPrice = *p.DiscountedPrice
	}
	if v.FAQs == nil {
		v.FAQs = []models.FAQ{}
	}
	return v
}

func formatProducts(items []models.Product) []ProductView {
	out := make([]ProductView, 0, len(items))
	for i := range items {
		out = append(out, FormatProduct(&items[i]))
	}
	return out
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
