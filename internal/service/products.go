package service

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Skotchmaster/furnishing_catalog/internal/logging"
	"github.com/Skotchmaster/furnishing_catalog/internal/models"
	"github.com/Skotchmaster/furnishing_catalog/internal/repo"
	"github.com/Skotchmaster/furnishing_catalog/internal/transport"
	"github.com/Skotchmaster/furnishing_catalog/internal/util"
)

type ProductService struct {
	Repo   *repo.GormRepo
	Events EventPublisher
	Index  ProductIndexer
	Now    func() time.Time
}

const productNotFound = "Product not found"

func (s *ProductService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *ProductService) Create(ctx context.Context, req transport.ProductRequest) (*models.Product, error) {
	prod := models.Product{IsActive: true}
	if err := s.apply(&prod, req); err != nil {
		return nil, err
	}
	if prod.Title != "" && (req.Slug == nil || strings.TrimSpace(*req.Slug) == "") {
		prod.Slug = util.ProductSlug(prod.Title, s.now())
	}

	created, err := s.Repo.CreateProduct(ctx, &prod)
	if err != nil {
		return nil, storeErr(err, "", "")
	}

	s.sync(ctx, created)
	publish(ctx, s.Events, TopicProducts, "product.created", created.ID, created)
	return created, nil
}

func (s *ProductService) ListActive(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListActiveProducts(ctx)
}

func (s *ProductService) Featured(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListFeaturedProducts(ctx)
}

// GetByIDOrSlug treats a 24 character hex token as an id and anything else as a slug.
func (s *ProductService) GetByIDOrSlug(ctx context.Context, token string) (*models.Product, error) {
	var (
		prod *models.Product
		err  error
	)
	if util.IsObjectIDHex(token) {
		prod, err = s.Repo.GetActiveProduct(ctx, strings.ToLower(token))
	} else {
		prod, err = s.Repo.GetActiveProductBySlug(ctx, token)
	}
	if err != nil {
		return nil, storeErr(err, productNotFound, "")
	}
	return prod, nil
}

func (s *ProductService) Filter(ctx context.Context, q transport.ProductFilterQuery) ([]models.Product, transport.Pagination, error) {
	page, limit := util.ValidatePagination(q.Page, q.Limit)
	offset, limit := util.Calculate(page, limit)

	f := repo.ProductFilter{
		Category:    strings.TrimSpace(q.Category),
		Subcategory: strings.TrimSpace(q.Subcategory),
		Search:      q.Search,
		Sort:        q.Sort,
		Offset:      offset,
		Limit:       limit,
	}
	for _, m := range strings.Split(q.Materials, ",") {
		if m = strings.TrimSpace(m); m != "" {
			f.Materials = append(f.Materials, m)
		}
	}

	var err error
	if f.MinPrice, err = parsePrice("minPrice", q.MinPrice); err != nil {
		return nil, transport.Pagination{}, err
	}
	if f.MaxPrice, err = parsePrice("maxPrice", q.MaxPrice); err != nil {
		return nil, transport.Pagination{}, err
	}

	total, items, err := s.Repo.FilterProducts(ctx, f)
	if err != nil {
		return nil, transport.Pagination{}, err
	}
	return items, transport.Pagination{Total: total, Page: page, Pages: util.TotalPages(total, limit)}, nil
}

// Search queries the product index when one is configured and falls back to
// the store's text filter otherwise.
func (s *ProductService) Search(ctx context.Context, query, pageParam, limitParam string) ([]models.Product, transport.Pagination, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, transport.Pagination{}, validationf("Search query is required")
	}
	if s.Index == nil {
		return s.Filter(ctx, transport.ProductFilterQuery{Search: query, Page: pageParam, Limit: limitParam})
	}

	page, limit := util.ValidatePagination(pageParam, limitParam)
	offset, limit := util.Calculate(page, limit)

	total, ids, err := s.Index.SearchProducts(ctx, query, offset, limit)
	if err != nil {
		logging.FromContext(ctx).Warn("search_index_failed", "error", err)
		return s.Filter(ctx, transport.ProductFilterQuery{Search: query, Page: pageParam, Limit: limitParam})
	}

	found, err := s.Repo.GetActiveProductsByIDs(ctx, ids)
	if err != nil {
		return nil, transport.Pagination{}, err
	}
	byID := make(map[string]models.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	items := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			items = append(items, p)
		}
	}
	return items, transport.Pagination{Total: total, Page: page, Pages: util.TotalPages(total, limit)}, nil
}

func (s *ProductService) Update(ctx context.Context, id string, req transport.ProductRequest) (*models.Product, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}
	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, storeErr(err, productNotFound, "")
	}

	if err := s.apply(prod, req); err != nil {
		return nil, err
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) != "" && (req.Slug == nil || strings.TrimSpace(*req.Slug) == "") {
		prod.Slug = util.ProductSlug(prod.Title, s.now())
	}

	if err := s.Repo.SaveProduct(ctx, prod); err != nil {
		return nil, storeErr(err, productNotFound, "")
	}

	s.sync(ctx, prod)
	publish(ctx, s.Events, TopicProducts, "product.updated", prod.ID, prod)
	return prod, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	id, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.Repo.SoftDeleteProduct(ctx, id); err != nil {
		return storeErr(err, productNotFound, "")
	}

	if s.Index != nil {
		if err := s.Index.DeleteProduct(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("search_index_delete_failed", "id", id, "error", err)
		}
	}
	publish(ctx, s.Events, TopicProducts, "product.deleted", id, nil)
	return nil
}

func (s *ProductService) apply(prod *models.Product, req transport.ProductRequest) error {
	if req.Title != nil {
		prod.Title = strings.TrimSpace(*req.Title)
	}
	if req.Slug != nil && strings.TrimSpace(*req.Slug) != "" {
		prod.Slug = util.Slugify(*req.Slug)
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}
	if req.CategoryID != nil {
		if *req.CategoryID == "" {
			prod.CategoryID = nil
		} else {
			hex, ok := util.NormalizeObjectID(*req.CategoryID)
			if !ok {
				return validationf("Invalid category_id")
			}
			prod.CategoryID = &hex
		}
	}
	if req.Category != nil {
		prod.Category = strings.TrimSpace(*req.Category)
	}
	if req.Subcategory != nil {
		prod.Subcategory = strings.TrimSpace(*req.Subcategory)
	}
	if req.OriginalPrice != nil {
		prod.OriginalPrice = req.OriginalPrice
	}
	if req.DiscountedPrice != nil {
		prod.DiscountedPrice = req.DiscountedPrice
	}
	if req.Featured != nil {
		prod.Featured = *req.Featured
	}
	if req.Images != nil {
		prod.Images = *req.Images
	}
	if req.MaterialUsed != nil {
		prod.MaterialUsed = *req.MaterialUsed
	}
	if req.ColorAndTexture != nil {
		prod.ColorAndTexture = *req.ColorAndTexture
	}
	if req.FAQs != nil {
		prod.FAQs = *req.FAQs
	}
	if req.ProductGuide != nil {
		prod.ProductGuide = *req.ProductGuide
	}
	if req.HowToUse != nil {
		prod.HowToUse = *req.HowToUse
	}
	if req.IsActive != nil {
		prod.IsActive = *req.IsActive
	}
	return validatePrices(prod)
}

func validatePrices(p *models.Product) error {
	if p.OriginalPrice != nil && *p.OriginalPrice < 0 {
		return validationf("original_price must be non-negative")
	}
	if p.DiscountedPrice != nil && *p.DiscountedPrice < 0 {
		return validationf("discounted_price must be non-negative")
	}
	if p.OriginalPrice != nil && p.DiscountedPrice != nil && *p.DiscountedPrice > *p.OriginalPrice {
		return validationf("discounted_price cannot exceed original_price")
	}
	return nil
}

func parsePrice(name, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return nil, validationf("%s must be a non-negative number", name)
	}
	return &v, nil
}

// sync mirrors a product into the search index; inactive products are removed.
func (s *ProductService) sync(ctx context.Context, p *models.Product) {
	if s.Index == nil {
		return
	}
	var err error
	if p.IsActive {
		err = s.Index.IndexProduct(ctx, p)
	} else {
		err = s.Index.DeleteProduct(ctx, p.ID)
	}
	if err != nil {
		logging.FromContext(ctx).Warn("search_index_sync_failed", "id", p.ID, "error", err)
	}
}

// Reindex pushes every active product to the search index.
func (s *ProductService) Reindex(ctx context.Context) (int, error) {
	if s.Index == nil {
		return 0, nil
	}
	items, err := s.Repo.ListActiveProducts(ctx)
	if err != nil {
		return 0, err
	}
	for i := range items {
		if err := s.Index.IndexProduct(ctx, &items[i]); err != nil {
			return i, err
		}
	}
	return len(items), nil
}
