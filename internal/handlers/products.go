package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/furnishing_catalog/internal/logging"
	"github.com/Skotchmaster/furnishing_catalog/internal/service"
	"github.com/Skotchmaster/furnishing_catalog/internal/transport"
)

type ProductHandler struct {
	Svc *service.ProductService
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products_list")

	items, err := h.Svc.ListActive(ctx)
	if err != nil {
		return fail(l, "products_list_error", err)
	}
	return respond(c, http.StatusOK, "Products fetched successfully", formatProducts(items))
}

func (h *ProductHandler) GetFeatured(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products_featured")

	items, err := h.Svc.Featured(ctx)
	if err != nil {
		return fail(l, "products_featured_error", err)
	}
	return respond(c, http.StatusOK, "Featured products fetched successfully", formatProducts(items))
}

func (h *ProductHandler) Filter(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products_filter")

	q := transport.ProductFilterQuery{
		Category:    c.QueryParam("category"),
		Subcategory: c.QueryParam("subcategory"),
		Materials:   c.QueryParam("materials"),
		MinPrice:    c.QueryParam("minPrice"),
		MaxPrice:    c.QueryParam("maxPrice"),
		Search:      c.QueryParam("search"),
		Page:        c.QueryParam("page"),
		Limit:       c.QueryParam("limit"),
		Sort:        c.QueryParam("sort"),
	}
	items, page, err := h.Svc.Filter(ctx, q)
	if err != nil {
		return fail(l, "products_filter_error", err)
	}
	return c.JSON(http.StatusOK, Response{
		Success:    true,
		Message:    "Filtered products fetched successfully",
		Data:       formatProducts(items),
		Pagination: &page,
	})
}

func (h *ProductHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products_search")

	items, page, err := h.Svc.Search(ctx, c.QueryParam("q"), c.QueryParam("page"), c.QueryParam("limit"))
	if err != nil {
		return fail(l, "products_search_error", err)
	}
	return c.JSON(http.StatusOK, Response{
		Success:    true,
		Message:    "Search results fetched successfully",
		Data:       formatProducts(items),
		Pagination: &page,
	})
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product_get", "id", c.Param("id"))

	p, err := h.Svc.GetByIDOrSlug(ctx, c.Param("id"))
	if err != nil {
		return fail(l, "product_get_error", err)
	}
	return respond(c, http.StatusOK, "Product fetched successfully", FormatProduct(p))
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product_create")

	var req transport.ProductRequest
	if err := bind(c, l, "product_create_error", &req); err != nil {
		return err
	}
	p, err := h.Svc.Create(ctx, req)
	if err != nil {
		return fail(l, "product_create_error", err)
	}

	l.Info("product_created", "product_id", p.ID)
	return respond(c, http.StatusCreated, "Product created successfully", FormatProduct(p))
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product_update", "id", c.Param("id"))

	var req transport.ProductRequest
	if err := bind(c, l, "product_update_error", &req); err != nil {
		return err
	}
	p, err := h.Svc.Update(ctx, c.Param("id"), req)
	if err != nil {
		return fail(l, "product_update_error", err)
	}

	l.Info("product_updated")
	return respond(c, http.StatusOK, "Product updated successfully", FormatProduct(p))
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product_delete", "id", c.Param("id"))

	if err := h.Svc.Delete(ctx, c.Param("id")); err != nil {
		return fail(l, "product_delete_error", err)
	}

	l.Info("product_deleted")
	return respond(c, http.StatusOK, "Product deleted successfully", nil)
}
