package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Skotchmaster/furnishing_catalog/internal/logging"
)

const (
	MaxUploadSize  = 10 << 20
	MaxUploadFiles = 10
)

var (
	imageExtTypes    = map[string]string{".jpeg": "image/jpeg", ".jpg": "image/jpeg", ".png": "image/png", ".gif": "image/gif", ".webp": "image/webp"}
	allowedImageMIME = map[string]bool{"image/jpeg": true, "image/png": true, "image/gif": true, "image/webp": true}
	unsafeKeyChars   = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)
	whitespace       = regexp.MustCompile(`\s+`)
)

type UploadFile struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

type UploadResult struct {
	URL string `json:"image_url"`
	Key string `json:"key"`
}

type UploadService struct {
	Store     ObjectStore
	Images    ImageProcessor
	TmpDir    string
	CDNDomain string
}

func (s *UploadService) UploadOne(ctx context.Context, f UploadFile) (*UploadResult, error) {
	if err := checkUpload(f); err != nil {
		return nil, err
	}
	return s.upload(ctx, f)
}

// UploadMany checks every file before storing any and returns results in input order.
func (s *UploadService) UploadMany(ctx context.Context, files []UploadFile) ([]UploadResult, error) {
	if len(files) == 0 {
		return nil, validationf("No files uploaded")
	}
	if len(files) > MaxUploadFiles {
		return nil, validationf("Too many files. Maximum is %d", MaxUploadFiles)
	}
	for _, f := range files {
		if err := checkUpload(f); err != nil {
			return nil, err
		}
	}

	out := make([]UploadResult, 0, len(files))
	for _, f := range files {
		res, err := s.upload(ctx, f)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, nil
}

func checkUpload(f UploadFile) error {
	if f.Open == nil {
		return validationf("No file uploaded")
	}
	if imageExtTypes[strings.ToLower(filepath.Ext(f.Name))] == "" {
		return validationf("Only image files are allowed")
	}
	if f.Size > MaxUploadSize {
		return validationf("File too large. Maximum size is 10MB")
	}
	return nil
}

func (s *UploadService) upload(ctx context.Context, f UploadFile) (*UploadResult, error) {
	if s.Store == nil {
		return nil, fmt.Errorf("object storage is not configured")
	}
	l := logging.FromContext(ctx).With("file", f.Name)

	src, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	contentType := http.DetectContentType(head)
	if !allowedImageMIME[contentType] {
		return nil, validationf("Only image files are allowed")
	}

	if err := os.MkdirAll(s.tmpDir(), 0o755); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(f.Name))
	in, err := os.CreateTemp(s.tmpDir(), "upload-*"+ext)
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	inPath := in.Name()
	defer removeTemp(l, inPath)

	sum := sha256.New()
	written, err := io.Copy(io.MultiWriter(in, sum), io.LimitReader(io.MultiReader(bytes.NewReader(head), src), MaxUploadSize+1))
	if cerr := in.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if written > MaxUploadSize {
		return nil, validationf("File too large. Maximum size is 10MB")
	}

	digest := hex.EncodeToString(sum.Sum(nil))
	return s.process(ctx, l, inPath, contentType, ext, func(outExt string) string {
		return objectKey(f.Name, digest, outExt)
	})
}

// StoreFile compresses the image at path and stores it under key plus the
// resulting extension.
func (s *UploadService) StoreFile(ctx context.Context, path, key string) (*UploadResult, error) {
	if s.Store == nil {
		return nil, fmt.Errorf("object storage is not configured")
	}
	ext := strings.ToLower(filepath.Ext(path))
	contentType := imageExtTypes[ext]
	if contentType == "" {
		return nil, validationf("Only image files are allowed")
	}
	if err := os.MkdirAll(s.tmpDir(), 0o755); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	l := logging.FromContext(ctx).With("file", filepath.Base(path))
	return s.process(ctx, l, path, contentType, ext, func(outExt string) string { return key + outExt })
}

func (s *UploadService) process(ctx context.Context, l *slog.Logger, inPath, contentType, ext string, keyFor func(outExt string) string) (*UploadResult, error) {
	outPath, outType, outExt := inPath, contentType, ext
	if s.Images != nil {
		out, err := os.CreateTemp(s.tmpDir(), "compressed-*.jpg")
		if err != nil {
			return nil, fmt.Errorf("create temp file: %w", err)
		}
		outPath = out.Name()
		_ = out.Close()
		defer removeTemp(l, outPath)

		if err := s.Images.Compress(inPath, outPath); err != nil {
			return nil, validationf("Could not process image: %v", err)
		}
		outType, outExt = "image/jpeg", ".jpg"
	}

	body, err := os.Open(outPath)
	if err != nil {
		return nil, fmt.Errorf("open processed image: %w", err)
	}
	defer body.Close()

	key := keyFor(outExt)
	location, err := s.Store.Put(ctx, key, body, outType)
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	url := location
	if s.CDNDomain != "" {
		url = "https://" + strings.TrimSuffix(s.CDNDomain, "/") + "/" + key
	}
	l.Info("image_uploaded", "key", key)
	return &UploadResult{URL: url, Key: key}, nil
}

func (s *UploadService) tmpDir() string {
	if s.TmpDir == "" {
		return os.TempDir()
	}
	return s.TmpDir
}

// objectKey builds products/<digest prefix>-<sanitized base name><ext>.
func objectKey(name, digest, ext string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	base = whitespace.ReplaceAllString(strings.TrimSpace(base), "_")
	base = unsafeKeyChars.ReplaceAllString(base, "")
	if base == "" {
		base = "image"
	}
	return fmt.Sprintf("products/%s-%s%s", digest[:16], base, ext)
}

func removeTemp(l *slog.Logger, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		l.Warn("temp_cleanup_failed", "path", path, "error", err)
	}
}
