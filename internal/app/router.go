package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/scanmart/scanmart/internal/catalog"
	"github.com/scanmart/scanmart/internal/observability"
	"github.com/scanmart/scanmart/internal/order"
	"github.com/scanmart/scanmart/internal/scan"
	"github.com/scanmart/scanmart/internal/session"
	"github.com/scanmart/scanmart/internal/store"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	StoreHandler   *store.Handler
	CatalogHandler *catalog.Handler
	OrderHandler   *order.Handler
	ScanHandler    *scan.Handler
	SessionHandler *session.Handler
	Metrics        *observability.Metrics
}

// NewRouter constructs the chi.Router with Scanmart defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/stores", params.StoreHandler.ListStores)
		r.Route("/store", params.StoreHandler.MountRoutes)
		r.Route("/products", params.CatalogHandler.MountRoutes)
		r.Route("/orders", params.OrderHandler.MountRoutes)
		r.Route("/scan", params.ScanHandler.MountRoutes)
		r.Route("/sessions", params.SessionHandler.MountRoutes)
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
