package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/solstice-erp/solstice-erp/internal/inventory"
	"github.com/solstice-erp/solstice-erp/internal/masterdata/products"
	"github.com/solstice-erp/solstice-erp/internal/sales/customers"
	"github.com/solstice-erp/solstice-erp/internal/sales/orders"
	"github.com/solstice-erp/solstice-erp/internal/sales/quotations"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	CustomerHandler  *customers.Handler
	ProductHandler   *products.Handler
	InventoryHandler *inventory.Handler
	QuotationHandler *quotations.Handler
	OrderHandler     *orders.Handler
}

// NewRouter assembles the chi router with the full middleware chain.
func NewRouter(p RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{Logger: p.Logger, Config: p.Config}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		p.CustomerHandler.MountRoutes(r)
		p.ProductHandler.MountRoutes(r)
		p.InventoryHandler.MountRoutes(r)
		p.QuotationHandler.MountRoutes(r)
		p.OrderHandler.MountRoutes(r)
	})

	return r
}
