package repo

import (
	"context"
	"encoding/json"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/furnishing_catalog/internal/models"
)

type ProductFilter struct {
	Category    string
	Subcategory string
	Materials   []string
	MinPrice    *float64
	MaxPrice    *float64
	Search      string
	Sort        string
	Offset      int
	Limit       int
}

var productSortColumns = map[string]string{
	"createdAt":        "created_at",
	"updatedAt":        "updated_at",
	"title":            "title",
	"original_price":   "original_price",
	"discounted_price": "discounted_price",
	"featured":         "featured",
}

// ProductOrder maps a sort token such as "-createdAt" to an ORDER BY clause.
// Unknown fields fall back to creation time.
func ProductOrder(sort string) string {
	dir := "ASC"
	if strings.HasPrefix(sort, "-") {
		dir = "DESC"
		sort = strings.TrimPrefix(sort, "-")
	}
	col, ok := productSortColumns[sort]
	if !ok {
		col = "created_at"
	}
	return col + " " + dir + ", id ASC"
}

func (r *GormRepo) activeProducts(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).Model(&models.Product{}).Where("is_active = ?", true)
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) (*models.Product, error) {
	if err := r.DB.WithContext(ctx).Create(prod).Error; err != nil {
		return nil, err
	}
	return prod, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var prod models.Product
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&prod).Error; err != nil {
		return nil, err
	}
	return &prod, nil
}

func (r *GormRepo) GetActiveProduct(ctx context.Context, id string) (*models.Product, error) {
	var prod models.Product
	if err := r.activeProducts(ctx).Where("id = ?", id).First(&prod).Error; err != nil {
		return nil, err
	}
	return &prod, nil
}

func (r *GormRepo) GetActiveProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var prod models.Product
	if err := r.activeProducts(ctx).Where("slug = ?", slug).First(&prod).Error; err != nil {
		return nil, err
	}
	return &prod, nil
}

func (r *GormRepo) GetActiveProductsByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	items := make([]models.Product, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}
	if err := r.activeProducts(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) ListActiveProducts(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	if err := r.activeProducts(ctx).Order("created_at DESC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) ListActiveProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	var items []models.Product
	if err := r.activeProducts(ctx).
		Where("category = ?", category).
		Order("created_at DESC, id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) ListFeaturedProducts(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	if err := r.activeProducts(ctx).
		Where("featured = ?", true).
		Order("created_at DESC, id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) FilterProducts(ctx context.Context, f ProductFilter) (int64, []models.Product, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if f.Category != "" {
			db = db.Where("category = ?", f.Category)
		}
		if f.Subcategory != "" {
			db = db.Where("subcategory = ?", f.Subcategory)
		}
		if len(f.Materials) > 0 {
			conds := make([]string, 0, len(f.Materials))
			args := make([]any, 0, len(f.Materials))
			for _, m := range f.Materials {
				conds = append(conds, "material_used LIKE ? ESCAPE '!'")
				args = append(args, "%"+escapeLike(jsonElement(m))+"%")
			}
			db = db.Where("("+strings.Join(conds, " OR ")+")", args...)
		}
		if f.MinPrice != nil || f.MaxPrice != nil {
			dq, da := priceBetween("discounted_price", f.MinPrice, f.MaxPrice)
			oq, oa := priceBetween("original_price", f.MinPrice, f.MaxPrice)
			db = db.Where("(("+dq+") OR ("+oq+"))", append(da, oa...)...)
		}
		if s := strings.TrimSpace(f.Search); s != "" {
			like := "%" + escapeLike(strings.ToLower(s)) + "%"
			db = db.Where("(LOWER(title) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!' OR "+
				"LOWER(category) LIKE ? ESCAPE '!' OR LOWER(subcategory) LIKE ? ESCAPE '!')",
				like, like, like, like)
		}
		return db
	}

	var total int64
	if err := r.activeProducts(ctx).Scopes(scope).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Product, 0, f.Limit)
	if err := r.activeProducts(ctx).
		Scopes(scope).
		Order(ProductOrder(f.Sort)).
		Offset(f.Offset).
		Limit(f.Limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// jsonElement renders s the way the json serializer stores it inside a list
// column, quotes included, so "Wood & Metal" becomes "Wood \u0026 Metal".
func jsonElement(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func priceBetween(col string, min, max *float64) (string, []any) {
	conds := []string{col + " IS NOT NULL"}
	var args []any
	if min != nil {
		conds = append(conds, col+" >= ?")
		args = append(args, *min)
	}
	if max != nil {
		conds = append(conds, col+" <= ?")
		args = append(args, *max)
	}
	return strings.Join(conds, " AND "), args
}

func (r *GormRepo) SaveProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Save(prod).Error
}

func (r *GormRepo) SoftDeleteProduct(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountProductsByCategory counts active and inactive products alike.
func (r *GormRepo) CountProductsByCategory(ctx context.Context, name string) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Product{}).Where("category = ?", name).Count(&n).Error
	return n, err
}

func (r *GormRepo) CountProductsBySubcategory(ctx context.Context, category, sub string) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Where("category = ? AND subcategory = ?", category, sub).
		Count(&n).Error
	return n, err
}

// ProductRefs resolves product ids to their title and category.
func (r *GormRepo) ProductRefs(ctx context.Context, ids []string) (map[string]models.ProductRef, error) {
	out := make(map[string]models.ProductRef, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []models.Product
	if err := r.DB.WithContext(ctx).
		Select("id", "title", "category").
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, p := range rows {
		out[p.ID] = models.ProductRef{ID: p.ID, Title: p.Title, Category: p.Category}
	}
	return out, nil
}
