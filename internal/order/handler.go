package order

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/scanmart/scanmart/internal/platform/httpx"
)

// Handler serves the order endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
	}
}

// MountRoutes registers order routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.createOrder)
	r.Get("/{id}", h.getOrder)
	r.Get("/user/{userId}", h.listUserOrders)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("invalid order payload: %w", httpx.ErrValidation))
		return
	}
	// An order without an items field is malformed; an explicitly empty
	// items array is allowed. validator cannot tell nil from [], so the
	// check lives here.
	if req.Items == nil {
		httpx.RespondError(w, fmt.Errorf("missing order items: %w", httpx.ErrValidation))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("invalid order data: %v: %w", err, httpx.ErrValidation))
		return
	}
	created, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("create order", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	details, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, details)
}

func (h *Handler) listUserOrders(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(chi.URLParam(r, "userId"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	orders, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("list user orders", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, orders)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", raw, httpx.ErrValidation)
	}
	return id, nil
}
