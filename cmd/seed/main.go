package main

import (
	"context"
	"flag"
	"os"

	"github.com/Skotchmaster/furnishing_catalog/internal/config"
	"github.com/Skotchmaster/furnishing_catalog/internal/db"
	"github.com/Skotchmaster/furnishing_catalog/internal/imaging"
	"github.com/Skotchmaster/furnishing_catalog/internal/logging"
	"github.com/Skotchmaster/furnishing_catalog/internal/repo"
	"github.com/Skotchmaster/furnishing_catalog/internal/seed"
	"github.com/Skotchmaster/furnishing_catalog/internal/service"
	"github.com/Skotchmaster/furnishing_catalog/internal/storage"
	"github.com/Skotchmaster/furnishing_catalog/internal/transport"
)

func main() {
	imageDir := flag.String("images", "", "directory with category and banner source images")
	username := flag.String("username", "admin", "admin username")
	resetPassword := flag.Bool("reset-password", false, "overwrite the password of an existing admin")
	flag.Parse()

	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	logger := logging.New(cfg.LogLevel).With("service", "seed")
	ctx := logging.IntoContext(context.Background(), logger)

	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("db_open_failed", "error", err)
		os.Exit(1)
	}
	defer db.Close(gdb)
	if err := db.Migrate(gdb); err != nil {
		logger.Error("migrate_failed", "error", err)
		os.Exit(1)
	}

	r := repo.New(gdb)
	s := &seed.Seeder{
		Repo:     r,
		Admins:   &service.AdminService{Repo: r, JWTSecret: cfg.JWTSecret, TokenTTL: cfg.JWTTTL},
		ImageDir: *imageDir,
	}

	if *imageDir != "" && cfg.StorageEnabled() {
		store, err := storage.NewS3(ctx, cfg)
		if err != nil {
			logger.Error("storage_init_failed", "error", err)
			os.Exit(1)
		}
		s.CategoryImages = &service.UploadService{Store: store, Images: imaging.New(), TmpDir: cfg.UploadTmpDir, CDNDomain: cfg.CDNDomain}
		s.BannerImages = &service.UploadService{
			Store:     store,
			Images:    &imaging.Compressor{MaxWidth: 3840, MaxHeight: 1600, Quality: 82},
			TmpDir:    cfg.UploadTmpDir,
			CDNDomain: cfg.CDNDomain,
		}
	}

	rep, err := s.Run(ctx, transport.CreateAdminRequest{
		Username: *username,
		Password: cfg.DefaultAdminPassword,
		FullName: "System Admin",
		Email:    cfg.AdminEmail,
	}, *resetPassword)
	if err != nil {
		logger.Error("seed_failed", "error", err)
		os.Exit(1)
	}

	logger.Info("seed_complete",
		"admin_created", rep.AdminCreated,
		"categories_created", rep.CategoriesCreated,
		"categories_updated", rep.CategoriesUpdated,
		"banners_created", rep.BannersCreated,
	)
}
