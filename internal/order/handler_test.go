package order

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() http.Handler {
	h := NewHandler(slog.Default(), NewService(NewMemoryRepository()))
	r := chi.NewRouter()
	r.Route("/api/orders", h.MountRoutes)
	return r
}

func TestCreateOrderEndpoint(t *testing.T) {
	router := newTestRouter()

	body := `{
		"storeId": 1,
		"orderNumber": "ORD-1710512345",
		"totalAmount": 10.25,
		"totalTax": 0.58,
		"totalSavings": 0.8,
		"totalWeight": 2.6,
		"orderDate": "2024-03-15T14:30:00Z",
		"status": "completed",
		"items": [{"productId": 1, "quantity": 2, "price": 3.99}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"orderNumber":"ORD-1710512345"`)
}

func TestCreateOrderMissingItems(t *testing.T) {
	router := newTestRouter()

	body := `{
		"storeId": 1,
		"orderNumber": "ORD-1710512345",
		"totalAmount": 10.25,
		"totalTax": 0.58,
		"totalSavings": 0.8,
		"totalWeight": 2.6,
		"orderDate": "2024-03-15T14:30:00Z",
		"status": "completed"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderEmptyItemsAllowed(t *testing.T) {
	router := newTestRouter()

	body := `{
		"storeId": 1,
		"orderNumber": "ORD-1710512346",
		"totalAmount": 0,
		"totalTax": 0,
		"totalSavings": 0,
		"totalWeight": 0,
		"orderDate": "2024-03-15T14:30:00Z",
		"status": "pending",
		"items": []
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateOrderMissingStatus(t *testing.T) {
	router := newTestRouter()

	body := `{
		"storeId": 1,
		"orderNumber": "ORD-1710512345",
		"orderDate": "2024-03-15T14:30:00Z"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrderInvalidID(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/orders/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrderNotFound(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/orders/99", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
