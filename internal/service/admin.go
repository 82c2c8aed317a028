package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Skotchmaster/furnishing_catalog/internal/hash"
	"github.com/Skotchmaster/furnishing_catalog/internal/models"
	"github.com/Skotchmaster/furnishing_catalog/internal/repo"
	"github.com/Skotchmaster/furnishing_catalog/internal/tokens"
	"github.com/Skotchmaster/furnishing_catalog/internal/transport"
	"github.com/Skotchmaster/furnishing_catalog/internal/util"
)

var errInvalidCredentials = &Error{Kind: ErrUnauthorized, Msg: "Invalid credentials"}

type AdminService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
	TokenTTL  time.Duration
	Now       func() time.Time
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Admin     *models.Admin
}

func (s *AdminService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Login answers with the same error for an unknown user, an inactive user and a wrong password.
func (s *AdminService) Login(ctx context.Context, req transport.LoginRequest) (*LoginResult, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	admin, err := s.Repo.GetAdminByUsername(ctx, username)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if !admin.IsActive || !hash.CheckPassword(admin.PasswordHash, req.Password) {
		return nil, errInvalidCredentials
	}

	token, exp, err := tokens.SignAdminToken(admin.ID, admin.Username, s.TokenTTL, s.JWTSecret)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if err := s.Repo.TouchAdminLogin(ctx, admin.ID, now); err != nil {
		return nil, err
	}
	admin.LastLogin = &now

	return &LoginResult{Token: token, ExpiresAt: exp, Admin: admin}, nil
}

func (s *AdminService) Create(ctx context.Context, req transport.CreateAdminRequest) (*models.Admin, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if username == "" || req.Password == "" {
		return nil, validationf("Username and password are required")
	}
	email, err := util.ValidateEmail(strings.TrimSpace(req.Email))
	if err != nil {
		return nil, validationf("Please enter a valid email address")
	}

	if _, err := s.Repo.GetAdminByUsername(ctx, username); err == nil {
		return nil, conflictf("Admin already exists")
	} else if !repo.IsNotFound(err) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	admin := models.Admin{
		Username:     username,
		PasswordHash: pwHash,
		FullName:     strings.TrimSpace(req.FullName),
		Email:        email,
		IsActive:     true,
	}
	created, err := s.Repo.CreateAdmin(ctx, &admin)
	if err != nil {
		return nil, storeErr(err, "", "Admin already exists")
	}
	return created, nil
}

// Verify resolves the admin behind an already validated token.
func (s *AdminService) Verify(ctx context.Context, adminID string) (*models.Admin, error) {
	admin, err := s.Repo.GetAdminByID(ctx, adminID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, &Error{Kind: ErrUnauthorized, Msg: "Admin not found"}
		}
		return nil, err
	}
	if !admin.IsActive {
		return nil, &Error{Kind: ErrUnauthorized, Msg: "Admin account is disabled"}
	}
	return admin, nil
}

func (s *AdminService) ChangePassword(ctx context.Context, adminID string, req transport.ChangePasswordRequest) error {
	if len(req.NewPassword) < 6 {
		return validationf("New password must be at least 6 characters")
	}
	admin, err := s.Verify(ctx, adminID)
	if err != nil {
		return err
	}
	if !hash.CheckPassword(admin.PasswordHash, req.CurrentPassword) {
		return &Error{Kind: ErrUnauthorized, Msg: "Current password is incorrect"}
	}

	pwHash, err := hash.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return storeErr(s.Repo.UpdateAdminPassword(ctx, admin.ID, pwHash), "Admin not found", "")
}

// EnsureAdmin creates the admin when the username is free and reports whether it did.
func (s *AdminService) EnsureAdmin(ctx context.Context, req transport.CreateAdminRequest) (bool, error) {
	_, err := s.Create(ctx, req)
	if errors.Is(err, ErrConflict) {
		return false, nil
	}
	return err == nil, err
}
