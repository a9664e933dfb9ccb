package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eduskill/eduskill-api/internal/metrics"
	"github.com/eduskill/eduskill-api/internal/infrastructure/storage"
)

// UploadHandler accepts image uploads and serves back their public URLs.
type UploadHandler struct {
	store *storage.DiskStore
}

func NewUploadHandler(store *storage.DiskStore) *UploadHandler {
	return &UploadHandler{store: store}
}

type uploadResponse struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// Upload handles a single multipart image under the "photo" field. Only
// image content types are accepted and files are capped at 5 MiB.
//
// @Summary      Upload an image
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        photo  formData  file  true  "Image file (max 5 MiB)"
// @Success      201    {object}  uploadResponse
// @Failure      400    {object}  map[string]string
// @Failure      413    {object}  map[string]string
// @Router       /api/v1/upload [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	if _, err := ctxUser(c); err != nil {
		return err
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "photo file is required")
	}
	if fh.Size > storage.MaxUploadBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file exceeds 5MB limit")
	}
	if ct := fh.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		return echo.NewHTTPError(http.StatusBadRequest, "only image files are allowed")
	}

	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read uploaded file")
	}
	defer src.Close()

	name, err := h.store.Save(fh.Filename, src)
	if err != nil {
		return err
	}

	metrics.UploadsTotal.Inc()
	return c.JSON(http.StatusCreated, uploadResponse{
		Filename: name,
		URL:      "/uploads/" + name,
	})
}
