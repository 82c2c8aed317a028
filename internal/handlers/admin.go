package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/furnishing_catalog/internal/logging"
	"github.com/Skotchmaster/furnishing_catalog/internal/middleware/auth"
	"github.com/Skotchmaster/furnishing_catalog/internal/models"
	"github.com/Skotchmaster/furnishing_catalog/internal/service"
	"github.com/Skotchmaster/furnishing_catalog/internal/transport"
)

type AdminHandler struct {
	Svc *service.AdminService
}

type adminView struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	FullName  string     `json:"full_name"`
	Email     string     `json:"email,omitempty"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

type loginResponse struct {
	Success   bool      `json:"success"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Admin     adminView `json:"admin"`
}

type adminResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	Admin   adminView `json:"admin"`
}

func viewAdmin(a *models.Admin) adminView {
	return adminView{ID: a.ID, Username: a.Username, FullName: a.FullName, Email: a.Email, LastLogin: a.LastLogin}
}

func (h *AdminHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_login")

	var req transport.LoginRequest
	if err := bind(c, l, "login_error", &req); err != nil {
		return err
	}

	res, err := h.Svc.Login(ctx, req)
	if err != nil {
		return fail(l.With("username", req.Username), "login_failed", err)
	}

	l.Info("login_success", "admin_id", res.Admin.ID)
	return c.JSON(http.StatusOK, loginResponse{
		Success:   true,
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		Admin:     viewAdmin(res.Admin),
	})
}

func (h *AdminHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_create")

	var req transport.CreateAdminRequest
	if err := bind(c, l, "admin_create_error", &req); err != nil {
		return err
	}

	admin, err := h.Svc.Create(ctx, req)
	if err != nil {
		return fail(l, "admin_create_error", err)
	}

	l.Info("admin_created", "new_admin_id", admin.ID)
	return c.JSON(http.StatusCreated, adminResponse{
		Success: true,
		Message: "Admin created successfully",
		Admin:   viewAdmin(admin),
	})
}

func (h *AdminHandler) Verify(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_verify")

	claims, ok := auth.AdminFromContext(c)
	if !ok {
		l.Warn("verify_error", "status", http.StatusUnauthorized, "reason", "no_claims")
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
	}
	admin, err := h.Svc.Verify(ctx, claims.Subject)
	if err != nil {
		return fail(l, "verify_error", err)
	}
	return c.JSON(http.StatusOK, adminResponse{Success: true, Admin: viewAdmin(admin)})
}

func (h *AdminHandler) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_password")

	claims, ok := auth.AdminFromContext(c)
	if !ok {
		l.Warn("password_error", "status", http.StatusUnauthorized, "reason", "no_claims")
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
	}

	var req transport.ChangePasswordRequest
	if err := bind(c, l, "password_error", &req); err != nil {
		return err
	}
	if err := h.Svc.ChangePassword(ctx, claims.Subject, req); err != nil {
		return fail(l, "password_error", err)
	}

	l.Info("password_changed")
	return respond(c, http.StatusOK, "Password updated successfully", nil)
}
