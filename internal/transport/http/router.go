package httpserver

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/Skotchmaster/furnishing_catalog/internal/handlers"
	"github.com/Skotchmaster/furnishing_catalog/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/furnishing_catalog/internal/middleware/logging"
	"github.com/Skotchmaster/furnishing_catalog/internal/middleware/ratelimit"
	"github.com/Skotchmaster/furnishing_catalog/internal/transport"
)

type Deps struct {
	DB              *gorm.DB
	Logger          *slog.Logger
	JWTSecret       []byte
	AllowOrigins    []string
	IPExtractor     echo.IPExtractor
	AdminHandler    *handlers.AdminHandler
	ProductHandler  *handlers.ProductHandler
	CategoryHandler *handlers.CategoryHandler
	BannerHandler   *handlers.BannerHandler
	EnquiryHandler  *handlers.EnquiryHandler
	UploadHandler   *handlers.UploadHandler
}

// New builds the echo instance with the shared middleware chain and every route.
func New(d *Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = transport.NewValidator()
	e.HTTPErrorHandler = HTTPErrorHandler
	e.IPExtractor = d.IPExtractor
	if e.IPExtractor == nil {
		e.IPExtractor = echo.ExtractIPDirect()
	}

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	e.Use(loggingmw.RequestLogger(d.Logger))
	e.Use(middleware.Recover())
	e.Use(middleware.Secure())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins(d.AllowOrigins),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{Level: 5}))

	Register(e, d)
	return e
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health", health(d.DB))
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", ready(d.DB))

	admin := auth.RequireAdmin(d.JWTSecret)
	jsonLimit := middleware.BodyLimit("2M")

	api := e.Group("/api", ratelimit.New(ratelimit.API))

	adm := api.Group("/admin", jsonLimit)
	adm.POST("/login", d.AdminHandler.Login, ratelimit.New(ratelimit.Login))
	adm.POST("/create", d.AdminHandler.Create, admin)
	adm.GET("/verify", d.AdminHandler.Verify, admin)
	adm.PUT("/password", d.AdminHandler.ChangePassword, admin)

	categories := api.Group("/categories", jsonLimit)
	categories.GET("", d.CategoryHandler.GetCategories)
	categories.GET("/subcategories", d.CategoryHandler.GetSubcategories)
	categories.GET("/:id", d.CategoryHandler.GetCategory)
	categories.POST("", d.CategoryHandler.CreateCategory, admin)
	categories.PUT("/:id", d.CategoryHandler.UpdateCategory, admin)
	categories.DELETE("/:id", d.CategoryHandler.DeleteCategory, admin)
	categories.POST("/:id/subcategory", d.CategoryHandler.AddSubcategory, admin)
	categories.DELETE("/:id/subcategory", d.CategoryHandler.RemoveSubcategory, admin)

	products := api.Group("/products", jsonLimit)
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/featured", d.ProductHandler.GetFeatured)
	products.GET("/filter", d.ProductHandler.Filter)
	products.GET("/search", d.ProductHandler.Search)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.POST("", d.ProductHandler.CreateProduct, admin)
	products.PUT("/:id", d.ProductHandler.UpdateProduct, admin)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct, admin)

	banners := api.Group("/banners", jsonLimit)
	banners.GET("", d.BannerHandler.GetBanners)
	banners.GET("/all", d.BannerHandler.GetAllBanners, admin)
	banners.POST("", d.BannerHandler.CreateBanner, admin)
	banners.PUT("/:id", d.BannerHandler.UpdateBanner, admin)
	banners.DELETE("/:id", d.BannerHandler.DeleteBanner, admin)

	enquiry := api.Group("/enquiry", jsonLimit)
	enquiry.POST("", d.EnquiryHandler.SubmitEnquiry, ratelimit.New(ratelimit.Enquiry))
	enquiry.GET("/all", d.EnquiryHandler.GetEnquiries, admin)
	enquiry.PUT("/:id/status", d.EnquiryHandler.UpdateStatus, admin)

	upload := api.Group("/upload", admin, middleware.BodyLimit("105M"))
	upload.POST("/single", d.UploadHandler.UploadImage)
	upload.POST("/multiple", d.UploadHandler.UploadImages)
}

// IPExtractor resolves the client address used for rate limiting. Without
// trusted proxies the socket peer is the client and forwarding headers are
// ignored. With them, X-Forwarded-For is walked from the right and the first
// hop outside the trusted ranges wins.
func IPExtractor(trustedProxies []string) (echo.IPExtractor, error) {
	if len(trustedProxies) == 0 {
		return echo.ExtractIPDirect(), nil
	}
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, p := range trustedProxies {
		_, ipNet, err := net.ParseCIDR(p)
		if err != nil {
			return nil, err
		}
		opts = append(opts, echo.TrustIPRange(ipNet))
	}
	return echo.ExtractIPFromXFFHeader(opts...), nil
}

func origins(in []string) []string {
	if len(in) == 0 {
		return []string{"*"}
	}
	return in
}

func health(db *gorm.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		status := "ok"
		if err := ping(c.Request().Context(), db); err != nil {
			status = "degraded"
		}
		return c.JSON(http.StatusOK, map[string]any{
			"success":   true,
			"status":    status,
			"timestamp": time.Now().UTC(),
		})
	}
}

func ready(db *gorm.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := ping(c.Request().Context(), db); err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable").SetInternal(err)
		}
		return c.NoContent(http.StatusOK)
	}
}

func ping(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
