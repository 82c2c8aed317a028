package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/furnishing_catalog/internal/logging"
	"github.com/Skotchmaster/furnishing_catalog/internal/service"
	"github.com/Skotchmaster/furnishing_catalog/internal/transport"
)

type BannerHandler struct {
	Svc *service.BannerService
}

func (h *BannerHandler) GetBanners(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "banners_list")

	items, err := h.Svc.ListActive(ctx)
	if err != nil {
		return fail(l, "banners_list_error", err)
	}
	return respond(c, http.StatusOK, "", nonNil(items))
}

func (h *BannerHandler) GetAllBanners(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "banners_list_all")

	items, err := h.Svc.ListAll(ctx)
	if err != nil {
		return fail(l, "banners_list_all_error", err)
	}
	return respond(c, http.StatusOK, "", nonNil(items))
}

func (h *BannerHandler) CreateBanner(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "banner_create")

	var req transport.BannerRequest
	if err := bind(c, l, "banner_create_error", &req); err != nil {
		return err
	}
	b, err := h.Svc.Create(ctx, req)
	if err != nil {
		return fail(l, "banner_create_error", err)
	}
	return respond(c, http.StatusCreated, "", b)
}

func (h *BannerHandler) UpdateBanner(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "banner_update", "id", c.Param("id"))

	var req transport.BannerRequest
	if err := bind(c, l, "banner_update_error", &req); err != nil {
		return err
	}
	b, err := h.Svc.Update(ctx, c.Param("id"), req)
	if err != nil {
		return fail(l, "banner_update_error", err)
	}
	return respond(c, http.StatusOK, "", b)
}

func (h *BannerHandler) DeleteBanner(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "banner_delete", "id", c.Param("id"))

	if err := h.Svc.Delete(ctx, c.Param("id")); err != nil {
		return fail(l, "banner_delete_error", err)
	}
	return respond(c, http.StatusOK, "Banner deleted successfully", nil)
}
