package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/storage"
)

// UploadHandler accepts admin image uploads
type UploadHandler struct {
	images   storage.ImageStore
	maxBytes int64
	logger   *slog.Logger
}

func NewUploadHandler(images storage.ImageStore, maxBytes int64, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{images: images, maxBytes: maxBytes, logger: logger}
}

// Upload handles POST /api/admin/uploads (multipart: file, kind)
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// leave room for the multipart envelope around the file
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+1<<20)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, http.StatusRequestEntityTooLarge, storage.ErrTooLarge.Error(), h.logger)
			return
		}
		WriteError(w, http.StatusBadRequest, "Invalid multipart form", h.logger)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	kind := storage.ImageKind(r.FormValue("kind"))
	if kind == "" {
		kind = storage.KindProductExtra
	}
	if !kind.Valid() {
		WriteError(w, http.StatusBadRequest, "kind must be product-main, product-extra or hero", h.logger)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "file is required", h.logger)
		return
	}
	defer file.Close()

	url, err := h.images.Save(r.Context(), kind, file)
	if err != nil {
		h.logger.Warn("image upload failed", "filename", header.Filename, "error", err)
		WriteServiceError(w, r, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]string{"url": url}, h.logger)
}
