package session

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/scanmart/scanmart/internal/platform/httpx"
)

// Handler serves the session endpoints.
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

// MountRoutes registers session routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.createSession)
	r.Route("/{sessionId}", func(r chi.Router) {
		r.Delete("/", h.endSession)
		r.Post("/scan/store", h.scanStore)
		r.Post("/scan/product", h.scanProduct)
		r.Get("/cart", h.getCart)
		r.Post("/cart/items", h.addItem)
		r.Put("/cart/items/{productId}", h.updateItem)
		r.Delete("/cart/items/{productId}", h.removeItem)
		r.Post("/checkout", h.startCheckout)
		r.Get("/checkout", h.checkoutStatus)
		r.Delete("/checkout", h.cancelCheckout)
		r.Post("/checkout/confirm", h.confirmCheckout)
	})
}

type sessionResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	s := h.service.Create()
	httpx.JSON(w, http.StatusCreated, sessionResponse{ID: s.ID, CreatedAt: s.CreatedAt})
}

func (h *Handler) endSession(w http.ResponseWriter, r *http.Request) {
	h.service.End(chi.URLParam(r, "sessionId"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) scanStore(w http.ResponseWriter, r *http.Request) {
	details, err := h.service.ScanStore(r.Context(), chi.URLParam(r, "sessionId"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, details)
}

func (h *Handler) scanProduct(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.ScanProduct(r.Context(), chi.URLParam(r, "sessionId"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Cart(chi.URLParam(r, "sessionId"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

type addItemRequest struct {
	Barcode   string `json:"barcode" validate:"required_without=ProductID"`
	ProductID int64  `json:"productId" validate:"required_without=Barcode"`
	Quantity  int    `json:"quantity" validate:"omitempty,gt=0"`
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("invalid cart item payload: %w", httpx.ErrValidation))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("invalid cart item: %v: %w", err, httpx.ErrValidation))
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	view, err := h.service.AddItem(r.Context(), chi.URLParam(r, "sessionId"), req.Barcode, req.ProductID, req.Quantity)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	productID, err := parseID(chi.URLParam(r, "productId"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var req updateItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("invalid quantity payload: %w", httpx.ErrValidation))
		return
	}
	view, err := h.service.UpdateItem(chi.URLParam(r, "sessionId"), productID, req.Quantity)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	productID, err := parseID(chi.URLParam(r, "productId"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	view, err := h.service.RemoveItem(chi.URLParam(r, "sessionId"), productID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

func (h *Handler) startCheckout(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.StartCheckout(chi.URLParam(r, "sessionId"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusAccepted, status)
}

func (h *Handler) checkoutStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.CheckoutStatus(chi.URLParam(r, "sessionId"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, status)
}

func (h *Handler) cancelCheckout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.CancelCheckout(chi.URLParam(r, "sessionId")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) confirmCheckout(w http.ResponseWriter, r *http.Request) {
	details, err := h.service.Confirm(r.Context(), chi.URLParam(r, "sessionId"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, details)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", raw, httpx.ErrValidation)
	}
	return id, nil
}
