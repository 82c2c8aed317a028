// Package seed loads the default admin, the furnishing taxonomy and the home
// page banners. Every step is safe to re-run.
package seed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/Skotchmaster/furnishing_catalog/internal/hash"
	"github.com/Skotchmaster/furnishing_catalog/internal/logging"
	"github.com/Skotchmaster/furnishing_catalog/internal/models"
	"github.com/Skotchmaster/furnishing_catalog/internal/repo"
	"github.com/Skotchmaster/furnishing_catalog/internal/service"
	"github.com/Skotchmaster/furnishing_catalog/internal/transport"
	"github.com/Skotchmaster/furnishing_catalog/internal/util"
)

var imageFile = regexp.MustCompile(`(?i)\.(jpe?g|png|webp)$`)

type Seeder struct {
	Repo   *repo.GormRepo
	Admins *service.AdminService

	// Optional. Without them categories and banners are seeded without images
	// and banners, which only make sense with a picture, are skipped.
	CategoryImages *service.UploadService
	BannerImages   *service.UploadService
	ImageDir       string
}

type Report struct {
	AdminCreated      bool
	CategoriesCreated int
	CategoriesUpdated int
	BannersCreated    int
}

func (s *Seeder) Run(ctx context.Context, admin transport.CreateAdminRequest, resetPassword bool) (Report, error) {
	var rep Report
	var err error

	if rep.AdminCreated, err = s.Admin(ctx, admin, resetPassword); err != nil {
		return rep, fmt.Errorf("seed admin: %w", err)
	}
	if rep.CategoriesCreated, rep.CategoriesUpdated, err = s.Categories(ctx); err != nil {
		return rep, fmt.Errorf("seed categories: %w", err)
	}
	if rep.BannersCreated, err = s.Banners(ctx); err != nil {
		return rep, fmt.Errorf("seed banners: %w", err)
	}
	return rep, nil
}

// Admin creates the admin when missing. An existing admin keeps its password
// unless resetPassword is set.
func (s *Seeder) Admin(ctx context.Context, req transport.CreateAdminRequest, resetPassword bool) (bool, error) {
	l := logging.FromContext(ctx).With("seed", "admin", "username", req.Username)

	created, err := s.Admins.EnsureAdmin(ctx, req)
	if err != nil {
		return false, err
	}
	if created {
		l.Info("admin_created")
		return true, nil
	}
	if !resetPassword {
		l.Info("admin_exists")
		return false, nil
	}

	existing, err := s.Repo.GetAdminByUsername(ctx, normalizeUsername(req.Username))
	if err != nil {
		return false, err
	}
	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return false, err
	}
	if err := s.Repo.UpdateAdminPassword(ctx, existing.ID, pwHash); err != nil {
		return false, err
	}
	l.Info("admin_password_reset")
	return false, nil
}

// Categories upserts the taxonomy by name.
func (s *Seeder) Categories(ctx context.Context) (created, updated int, err error) {
	l := logging.FromContext(ctx).With("seed", "categories")

	for _, item := range taxonomy {
		cat, err := s.Repo.GetCategoryByName(ctx, item.Name)
		isNew := repo.IsNotFound(err)
		if err != nil && !isNew {
			return created, updated, err
		}
		if isNew {
			cat = &models.Category{Name: item.Name, IsActive: true}
		}

		cat.Subcategories = append([]string{}, item.Subcategories...)
		cat.DisplayOrder = item.DisplayOrder
		if url := s.categoryImage(ctx, item); url != "" {
			cat.ImageURL = url
		}

		if isNew {
			if _, err := s.Repo.CreateCategory(ctx, cat); err != nil {
				return created, updated, err
			}
			created++
			l.Info("category_created", "name", item.Name)
			continue
		}
		if err := s.Repo.SaveCategory(ctx, cat); err != nil {
			return created, updated, err
		}
		updated++
		l.Debug("category_updated", "name", item.Name)
	}
	return created, updated, nil
}

func (s *Seeder) categoryImage(ctx context.Context, item categorySeed) string {
	if s.CategoryImages == nil || s.ImageDir == "" {
		return ""
	}
	path := filepath.Join(s.ImageDir, item.ImageFile)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	res, err := s.CategoryImages.StoreFile(ctx, path, "categories/"+util.Slugify(item.Name))
	if err != nil {
		logging.FromContext(ctx).Warn("category_image_failed", "name", item.Name, "error", err)
		return ""
	}
	return res.URL
}

// Banners creates the home page banners whose title is not present yet.
func (s *Seeder) Banners(ctx context.Context) (int, error) {
	l := logging.FromContext(ctx).With("seed", "banners")
	if s.BannerImages == nil || s.ImageDir == "" {
		l.Info("banners_skipped", "reason", "no image source")
		return 0, nil
	}

	existing, err := s.Repo.ListBanners(ctx, false)
	if err != nil {
		return 0, err
	}
	have := make(map[string]bool, len(existing))
	for _, b := range existing {
		have[b.Title] = true
	}

	files := listImages(s.ImageDir)
	created := 0
	for _, item := range banners {
		if have[item.Title] {
			continue
		}
		file := firstMatch(files, item.Match)
		if file == "" {
			l.Warn("banner_image_missing", "category", item.Category)
			continue
		}

		cat, err := s.Repo.GetCategoryByName(ctx, item.Category)
		if err != nil {
			return created, fmt.Errorf("category %q: %w", item.Category, err)
		}
		res, err := s.BannerImages.StoreFile(ctx, filepath.Join(s.ImageDir, file), "banners/"+item.Key)
		if err != nil {
			return created, err
		}

		b := models.Banner{
			Title:    item.Title,
			Subtitle: item.Subtitle,
			Category: cat.ID,
			ImageURL: res.URL,
			IsActive: true,
		}
		if _, err := s.Repo.CreateBanner(ctx, &b); err != nil {
			return created, err
		}
		created++
		l.Info("banner_created", "title", item.Title, "image", res.URL)
	}
	return created, nil
}

func listImages(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && imageFile.MatchString(e.Name()) {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out
}

func firstMatch(files []string, patterns []*regexp.Regexp) string {
	for _, f := range files {
		for _, p := range patterns {
			if p.MatchString(f) {
				return f
			}
		}
	}
	return ""
}

func normalizeUsername(u string) string {
	return strings.ToLower(strings.TrimSpace(u))
}
