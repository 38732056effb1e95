package catalog

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/scanmart/scanmart/internal/platform/httpx"
)

// Handler serves the product endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers product routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.listProducts)
	r.Get("/barcode/{barcode}", h.productByBarcode)
	r.Get("/category/{category}", h.productsByCategory)
	r.Get("/recommended/{storeId}", h.recommendedProducts)
	r.Get("/related/{productId}", h.relatedProducts)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.AllProducts(r.Context())
	if err != nil {
		h.logger.Error("list products", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, products)
}

func (h *Handler) productByBarcode(w http.ResponseWriter, r *http.Request) {
	barcode := chi.URLParam(r, "barcode")
	product, err := h.service.ProductByBarcode(r.Context(), barcode)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

func (h *Handler) productsByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	products, err := h.service.ProductsByCategory(r.Context(), category)
	if err != nil {
		h.logger.Error("list products by category", slog.String("category", category), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if products == nil {
		products = []Product{}
	}
	httpx.JSON(w, http.StatusOK, products)
}

func (h *Handler) recommendedProducts(w http.ResponseWriter, r *http.Request) {
	storeID, err := parseID(chi.URLParam(r, "storeId"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	products, err := h.service.Recommended(r.Context(), storeID)
	if err != nil {
		h.logger.Error("recommended products", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, products)
}

func (h *Handler) relatedProducts(w http.ResponseWriter, r *http.Request) {
	productID, err := parseID(chi.URLParam(r, "productId"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	products, err := h.service.Related(r.Context(), productID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, products)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", raw, httpx.ErrValidation)
	}
	return id, nil
}
