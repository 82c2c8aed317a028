package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Skotchmaster/furnishing_catalog/internal/config"
	"github.com/Skotchmaster/furnishing_catalog/internal/db"
	"github.com/Skotchmaster/furnishing_catalog/internal/es"
	"github.com/Skotchmaster/furnishing_catalog/internal/handlers"
	"github.com/Skotchmaster/furnishing_catalog/internal/imaging"
	"github.com/Skotchmaster/furnishing_catalog/internal/logging"
	"github.com/Skotchmaster/furnishing_catalog/internal/mailer"
	"github.com/Skotchmaster/furnishing_catalog/internal/mykafka"
	"github.com/Skotchmaster/furnishing_catalog/internal/repo"
	"github.com/Skotchmaster/furnishing_catalog/internal/service"
	"github.com/Skotchmaster/furnishing_catalog/internal/storage"
	httpserver "github.com/Skotchmaster/furnishing_catalog/internal/transport/http"
	"github.com/Skotchmaster/furnishing_catalog/internal/worker"
)

func main() {
	cfg := config.Load()
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	logger := logging.New(cfg.LogLevel)
	if cfg.LogFile != "" {
		logger = logging.NewWithFile(cfg.LogLevel, cfg.LogFile)
	}
	logger = logger.With("service", cfg.ServiceName)
	slog.SetDefault(logger)
	ctx := logging.IntoContext(context.Background(), logger)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server_failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			logger.Error("db_close_error", "error", err)
		}
	}()
	if err := db.Migrate(gdb); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	pool, err := worker.New(cfg.WorkerPoolSize, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := pool.Release(30 * time.Second); err != nil {
			logger.Warn("worker_pool_release", "error", err)
		}
	}()

	r := repo.New(gdb)
	products := &service.ProductService{Repo: r}
	categories := &service.CategoryService{Repo: r}
	enquiries := &service.EnquiryService{
		Repo:        r,
		Runner:      pool,
		StrictPhone: cfg.EnquiryStrictPhone,
		StrictEmail: cfg.EnquiryStrictEmail,
		MaxQuantity: cfg.EnquiryMaxQuantity,
	}
	uploads := &service.UploadService{Images: imaging.New(), TmpDir: cfg.UploadTmpDir, CDNDomain: cfg.CDNDomain}

	if len(cfg.KafkaBrokers) > 0 {
		if err := mykafka.EnsureTopics(cfg.KafkaBrokers[0], service.TopicProducts, service.TopicCategories, service.TopicEnquiries); err != nil {
			logger.Warn("kafka_topics_not_created", "error", err)
		}
		prod, err := mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			return err
		}
		defer func() {
			if err := prod.Close(); err != nil {
				logger.Error("kafka_close_error", "error", err)
			}
		}()
		products.Events = prod
		categories.Events = prod
		enquiries.Events = prod
	} else {
		logger.Info("kafka_disabled")
	}

	if cfg.ESURL != "" {
		client, err := es.NewClient(cfg, logger)
		if err != nil {
			logger.Warn("search_disabled", "error", err)
		} else {
			index := es.NewProductIndex(client, cfg.ESIndex)
			products.Index = index
			categories.Index = index
			if created, err := index.EnsureIndex(ctx); err != nil {
				logger.Warn("search_index_not_ready", "error", err)
			} else if created {
				n, err := products.Reindex(ctx)
				logger.Info("search_index_built", "products", n, "error", err)
			}
		}
	}

	if cfg.MailEnabled() {
		enquiries.Mailer = mailer.New(cfg)
	} else {
		logger.Warn("mail_disabled", "reason", "SMTP_HOST, EMAIL_USER or OWNER_EMAIL not set")
	}

	if cfg.StorageEnabled() {
		store, err := storage.NewS3(ctx, cfg)
		if err != nil {
			return err
		}
		uploads.Store = store
	} else {
		logger.Warn("uploads_disabled", "reason", "S3_BUCKET_NAME not set")
	}

	ipExtractor, err := httpserver.IPExtractor(cfg.TrustedProxies)
	if err != nil {
		return fmt.Errorf("TRUSTED_PROXIES: %w", err)
	}

	e := httpserver.New(&httpserver.Deps{
		DB:              gdb,
		IPExtractor:     ipExtractor,
		Logger:          logger,
		JWTSecret:       cfg.JWTSecret,
		AllowOrigins:    cfg.AllowOrigins,
		AdminHandler:    &handlers.AdminHandler{Svc: &service.AdminService{Repo: r, JWTSecret: cfg.JWTSecret, TokenTTL: cfg.JWTTTL}},
		ProductHandler:  &handlers.ProductHandler{Svc: products},
		CategoryHandler: &handlers.CategoryHandler{Svc: categories},
		BannerHandler:   &handlers.BannerHandler{Svc: &service.BannerService{Repo: r}},
		EnquiryHandler:  &handlers.EnquiryHandler{Svc: enquiries},
		UploadHandler:   &handlers.UploadHandler{Svc: uploads},
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http_listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 2)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-quit:
	}

	go func() {
		<-quit
		logger.Error("force exit")
		os.Exit(1)
	}()

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_error", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}
