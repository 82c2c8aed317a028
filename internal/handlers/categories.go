package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/furnishing_catalog/internal/logging"
	"github.com/Skotchmaster/furnishing_catalog/internal/service"
	"github.com/Skotchmaster/furnishing_catalog/internal/transport"
)

type CategoryHandler struct {
	Svc *service.CategoryService
}

func (h *CategoryHandler) GetCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "categories_list")

	includeInactive, _ := strconv.ParseBool(c.QueryParam("includeInactive"))
	items, err := h.Svc.List(ctx, includeInactive)
	if err != nil {
		return fail(l, "categories_list_error", err)
	}
	return respond(c, http.StatusOK, "", nonNil(items))
}

func (h *CategoryHandler) GetSubcategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "subcategories_map")

	m, err := h.Svc.Subcategories(ctx)
	if err != nil {
		return fail(l, "subcategories_map_error", err)
	}
	return respond(c, http.StatusOK, "", m)
}

func (h *CategoryHandler) GetCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category_get", "id", c.Param("id"))

	cat, err := h.Svc.Get(ctx, c.Param("id"))
	if err != nil {
		return fail(l, "category_get_error", err)
	}
	return respond(c, http.StatusOK, "", cat)
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category_create")

	var req transport.CategoryRequest
	if err := bind(c, l, "category_create_error", &req); err != nil {
		return err
	}
	cat, err := h.Svc.Create(ctx, req)
	if err != nil {
		return fail(l, "category_create_error", err)
	}

	l.Info("category_created", "category_id", cat.ID)
	return respond(c, http.StatusCreated, "", cat)
}

func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category_update", "id", c.Param("id"))

	var req transport.CategoryRequest
	if err := bind(c, l, "category_update_error", &req); err != nil {
		return err
	}
	cat, err := h.Svc.Update(ctx, c.Param("id"), req)
	if err != nil {
		return fail(l, "category_update_error", err)
	}

	l.Info("category_updated")
	return respond(c, http.StatusOK, "", cat)
}

func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category_delete", "id", c.Param("id"))

	if err := h.Svc.Delete(ctx, c.Param("id")); err != nil {
		return fail(l, "category_delete_error", err)
	}

	l.Info("category_deleted")
	return respond(c, http.StatusOK, "Category deleted successfully", nil)
}

func (h *CategoryHandler) AddSubcategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "subcategory_add", "id", c.Param("id"))

	var req transport.SubcategoryRequest
	if err := bind(c, l, "subcategory_add_error", &req); err != nil {
		return err
	}
	cat, err := h.Svc.AddSubcategory(ctx, c.Param("id"), req.Subcategory)
	if err != nil {
		return fail(l, "subcategory_add_error", err)
	}
	return respond(c, http.StatusOK, "", cat)
}

func (h *CategoryHandler) RemoveSubcategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "subcategory_remove", "id", c.Param("id"))

	var req transport.SubcategoryRequest
	if err := bind(c, l, "subcategory_remove_error", &req); err != nil {
		return err
	}
	cat, err := h.Svc.RemoveSubcategory(ctx, c.Param("id"), req.Subcategory)
	if err != nil {
		return fail(l, "subcategory_remove_error", err)
	}
	return respond(c, http.StatusOK, "", cat)
}
