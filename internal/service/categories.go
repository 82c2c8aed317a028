package service

import (
	"context"
	"slices"
	"strings"

	"github.com/Skotchmaster/furnishing_catalog/internal/logging"
	"github.com/Skotchmaster/furnishing_catalog/internal/models"
	"github.com/Skotchmaster/furnishing_catalog/internal/repo"
	"github.com/Skotchmaster/furnishing_catalog/internal/transport"
)

type CategoryService struct {
	Repo   *repo.GormRepo
	Events EventPublisher
	Index  ProductIndexer
}

const (
	categoryNotFound  = "Category not found"
	categoryDuplicate = "Category name already exists"
)

func (s *CategoryService) Create(ctx context.Context, req transport.CategoryRequest) (*models.Category, error) {
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		return nil, validationf("Category name is required")
	}
	cat := models.Category{IsActive: true, Subcategories: []string{}}
	applyCategory(&cat, req)

	created, err := s.Repo.CreateCategory(ctx, &cat)
	if err != nil {
		return nil, storeErr(err, "", categoryDuplicate)
	}
	publish(ctx, s.Events, TopicCategories, "category.created", created.ID, created)
	return created, nil
}

func (s *CategoryService) List(ctx context.Context, includeInactive bool) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx, includeInactive)
}

func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}
	cat, err := s.Repo.GetCategory(ctx, id)
	if err != nil {
		return nil, storeErr(err, categoryNotFound, "")
	}
	return cat, nil
}

// Subcategories maps each active category name to its subcategory list.
func (s *CategoryService) Subcategories(ctx context.Context) (map[string][]string, error) {
	cats, err := s.Repo.ListCategories(ctx, false)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]string, len(cats))
	for _, c := range cats {
		subs := c.Subcategories
		if subs == nil {
			subs = []string{}
		}
		out[c.Name] = subs
	}
	return out, nil
}

// Update rewrites the category and, when the name changes, every product that
// carries the old name.
func (s *CategoryService) Update(ctx context.Context, id string, req transport.CategoryRequest) (*models.Category, error) {
	cat, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, validationf("Category name is required")
	}

	oldName := cat.Name
	applyCategory(cat, req)

	var renamed int64
	if cat.Name != oldName {
		renamed, err = s.Repo.SaveCategoryRenaming(ctx, cat, oldName)
	} else {
		err = s.Repo.SaveCategory(ctx, cat)
	}
	if err != nil {
		return nil, storeErr(err, categoryNotFound, categoryDuplicate)
	}
	if renamed > 0 {
		s.reindexCategory(ctx, cat.Name)
	}

	publish(ctx, s.Events, TopicCategories, "category.updated", cat.ID, map[string]any{
		"category":         cat,
		"previous_name":    oldName,
		"renamed_products": renamed,
	})
	return cat, nil
}

// reindexCategory pushes the renamed products to the search index so that
// search matches the new category name.
func (s *CategoryService) reindexCategory(ctx context.Context, name string) {
	if s.Index == nil {
		return
	}
	l := logging.FromContext(ctx)
	items, err := s.Repo.ListActiveProductsByCategory(ctx, name)
	if err != nil {
		l.Warn("search_index_sync_failed", "category", name, "error", err)
		return
	}
	for i := range items {
		if err := s.Index.IndexProduct(ctx, &items[i]); err != nil {
			l.Warn("search_index_sync_failed", "id", items[i].ID, "error", err)
		}
	}
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	cat, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	n, err := s.Repo.CountProductsByCategory(ctx, cat.Name)
	if err != nil {
		return err
	}
	if n > 0 {
		return conflictf("Cannot delete category. %d products exist in this category.", n)
	}
	if err := s.Repo.DeleteCategory(ctx, cat.ID); err != nil {
		return storeErr(err, categoryNotFound, "")
	}
	publish(ctx, s.Events, TopicCategories, "category.deleted", cat.ID, nil)
	return nil
}

func (s *CategoryService) AddSubcategory(ctx context.Context, id, sub string) (*models.Category, error) {
	sub = strings.TrimSpace(sub)
	if sub == "" {
		return nil, validationf("Subcategory name is required")
	}
	cat, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if slices.Contains(cat.Subcategories, sub) {
		return nil, conflictf("Subcategory already exists")
	}

	cat.Subcategories = append(cat.Subcategories, sub)
	if err := s.Repo.SaveCategory(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *CategoryService) RemoveSubcategory(ctx context.Context, id, sub string) (*models.Category, error) {
	sub = strings.TrimSpace(sub)
	if sub == "" {
		return nil, validationf("Subcategory name is required")
	}
	cat, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	n, err := s.Repo.CountProductsBySubcategory(ctx, cat.Name, sub)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, conflictf("Cannot delete subcategory. %d products exist in this subcategory.", n)
	}

	cat.Subcategories = slices.DeleteFunc(cat.Subcategories, func(v string) bool { return v == sub })
	if err := s.Repo.SaveCategory(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func applyCategory(cat *models.Category, req transport.CategoryRequest) {
	if req.Name != nil {
		cat.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		cat.Description = strings.TrimSpace(*req.Description)
	}
	if req.Subcategories != nil {
		cat.Subcategories = uniqueNonEmpty(*req.Subcategories)
	}
	if req.ImageURL != nil {
		cat.ImageURL = *req.ImageURL
	}
	if req.DisplayOrder != nil {
		cat.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		cat.IsActive = *req.IsActive
	}
}

func uniqueNonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
