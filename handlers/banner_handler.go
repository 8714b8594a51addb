package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Dosada05/judging-system/services"
)

const bannerFormField = "banner"

type BannerHandler struct {
	bannerService services.BannerService
	maxBytes      int64
}

func NewBannerHandler(bannerService services.BannerService, maxBytes int64) *BannerHandler {
	return &BannerHandler{bannerService: bannerService, maxBytes: maxBytes}
}

func (h *BannerHandler) GetBanner(w http.ResponseWriter, r *http.Request) {
	banner, err := h.bannerService.GetBanner(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"banner": banner}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UploadBanner godoc
// @Summary Replace the judge banner image
// @Tags banner
// @Accept multipart/form-data
// @Produce json
// @Param banner formData file true "PNG, JPEG or WebP image"
// @Success 200 {object} models.Asset
// @Failure 413 {object} map[string]string "Image too large"
// @Failure 422 {object} map[string]string "Unsupported image type"
// @Failure 503 {object} map[string]string "Object storage not configured"
// @Security BearerAuth
// @Router /admin/banner [put]
func (h *BannerHandler) UploadBanner(w http.ResponseWriter, r *http.Request) {
	// Leave room for multipart framing around the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+64*1024)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			mapServiceErrorToHTTP(w, r, services.ErrBannerTooLarge)
			return
		}
		badRequestResponse(w, r, fmt.Errorf("invalid multipart form: %w", err))
		return
	}

	file, header, err := r.FormFile(bannerFormField)
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("missing %q file field", bannerFormField))
		return
	}
	defer file.Close()

	banner, err := h.bannerService.UploadBanner(r.Context(), services.UploadBannerInput{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Reader:      file,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"banner": banner}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BannerHandler) DeleteBanner(w http.ResponseWriter, r *http.Request) {
	if err := h.bannerService.DeleteBanner(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
