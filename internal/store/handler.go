package store

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/scanmart/scanmart/internal/platform/httpx"
)

// Handler serves the store endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers store routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/qr/{qrCode}", h.storeByQRCode)
	r.Get("/{id}", h.storeByID)
	r.Get("/{id}/qrcode.png", h.storeQRImage)
}

// ListStores serves the full store list.
func (h *Handler) ListStores(w http.ResponseWriter, r *http.Request) {
	stores, err := h.service.AllStores(r.Context())
	if err != nil {
		h.logger.Error("list stores", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stores)
}

func (h *Handler) storeByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	details, err := h.service.Store(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, details)
}

func (h *Handler) storeByQRCode(w http.ResponseWriter, r *http.Request) {
	details, err := h.service.StoreByQRCode(r.Context(), chi.URLParam(r, "qrCode"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, details)
}

func (h *Handler) storeQRImage(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	png, err := h.service.QRCodePNG(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", raw, httpx.ErrValidation)
	}
	return id, nil
}
