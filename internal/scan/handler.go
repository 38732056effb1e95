package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/scanmart/scanmart/internal/platform/httpx"
	"github.com/scanmart/scanmart/internal/store"
)

// maxImageSize caps uploaded scan images at 5 MiB.
const maxImageSize = 5 << 20

// StoreResolver looks up stores for decoded scan codes.
type StoreResolver interface {
	StoreByQRCode(ctx context.Context, qrCode string) (*store.Details, error)
}

// Handler serves the image decode endpoint.
type Handler struct {
	logger  *slog.Logger
	decoder *Decoder
	stores  StoreResolver
}

// NewHandler builds Handler instance. stores may be nil.
func NewHandler(logger *slog.Logger, stores StoreResolver) *Handler {
	return &Handler{logger: logger, decoder: NewDecoder(), stores: stores}
}

// MountRoutes registers scan routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/decode", h.decode)
}

type decodeResponse struct {
	Code  string         `json:"code"`
	Store *store.Details `json:"store,omitempty"`
}

// decode accepts a PNG or JPEG upload, either as a multipart "image" field
// or as the raw request body, and returns the QR code text it contains. When
// the code is a store scan code the matching store is attached.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request) {
	body, err := h.imageBody(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	defer body.Close()

	code, err := h.decoder.Decode(io.LimitReader(body, maxImageSize))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	resp := decodeResponse{Code: code}
	if _, ok := store.ParseScanCode(code); ok && h.stores != nil {
		details, err := h.stores.StoreByQRCode(r.Context(), code)
		switch {
		case err == nil:
			resp.Store = details
		case errors.Is(err, httpx.ErrNotFound):
			// A valid-looking code for a store we do not know stays bare.
		default:
			httpx.RespondError(w, err)
			return
		}
	}
	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) imageBody(r *http.Request) (io.ReadCloser, error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.Body, nil
	}
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		return nil, fmt.Errorf("invalid multipart upload: %w", httpx.ErrValidation)
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		return nil, fmt.Errorf("missing image field: %w", httpx.ErrValidation)
	}
	return file, nil
}
