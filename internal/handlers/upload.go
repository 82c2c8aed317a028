package handlers

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/furnishing_catalog/internal/logging"
	"github.com/Skotchmaster/furnishing_catalog/internal/service"
)

type UploadHandler struct {
	Svc *service.UploadService
}

type uploadOneResponse struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"image_url"`
	Key      string `json:"key"`
	Message  string `json:"message"`
}

type uploadManyResponse struct {
	Success   bool     `json:"success"`
	ImageURLs []string `json:"image_urls"`
	Message   string   `json:"message"`
}

func toUploadFile(fh *multipart.FileHeader) service.UploadFile {
	return service.UploadFile{
		Name: fh.Filename,
		Size: fh.Size,
		Open: func() (io.ReadCloser, error) { return fh.Open() },
	}
}

func (h *UploadHandler) UploadImage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "upload_single")

	fh, err := c.FormFile("image")
	if err != nil {
		l.Warn("upload_error", "status", http.StatusBadRequest, "reason", "no_file", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "No file uploaded")
	}

	res, err := h.Svc.UploadOne(ctx, toUploadFile(fh))
	if err != nil {
		return fail(l, "upload_error", err)
	}

	l.Info("image_uploaded", "key", res.Key)
	return c.JSON(http.StatusOK, uploadOneResponse{
		Success:  true,
		ImageURL: res.URL,
		Key:      res.Key,
		Message:  "Image uploaded successfully",
	})
}

func (h *UploadHandler) UploadImages(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "upload_multiple")

	form, err := c.MultipartForm()
	if err != nil || len(form.File["images"]) == 0 {
		l.Warn("upload_error", "status", http.StatusBadRequest, "reason", "no_files", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "No files uploaded")
	}

	files := make([]service.UploadFile, 0, len(form.File["images"]))
	for _, fh := range form.File["images"] {
		files = append(files, toUploadFile(fh))
	}

	results, err := h.Svc.UploadMany(ctx, files)
	if err != nil {
		return fail(l, "upload_error", err)
	}

	urls := make([]string, 0, len(results))
	for _, r := range results {
		urls = append(urls, r.URL)
	}
	l.Info("images_uploaded", "count", len(urls))
	return c.JSON(http.StatusOK, uploadManyResponse{
		Success:   true,
		ImageURLs: urls,
		Message:   "Images uploaded successfully",
	})
}
