package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jcastellanos/pos-backend/api/controllers"
	"github.com/jcastellanos/pos-backend/api/middleware"
	products "github.com/jcastellanos/pos-backend/internal/products"
	"github.com/jcastellanos/pos-backend/pkg/config"
	"github.com/jcastellanos/pos-backend/pkg/db"
	"github.com/jcastellanos/pos-backend/pkg/logger"
	"github.com/jcastellanos/pos-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	productService products.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(httpMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/products", func(r chi.Router) {
		r.Post("/", controllers.CreateProduct(productService, logg))
		r.Get("/", controllers.ListProducts(productService, logg))

		// static paths before the id subtree so chi does not treat them
		// as product ids
		r.Get("/search", controllers.SearchProducts(productService, logg))
		r.Get("/by-name", controllers.GetProductByName(productService, logg))
		r.Get("/price-range", controllers.ProductsByPriceRange(productService, logg))
		r.Get("/price-above", controllers.ProductsAbovePrice(productService, logg))
		r.Get("/available", controllers.AvailableProducts(productService, logg))
		r.Get("/low-stock", controllers.LowStockProducts(productService, logg))

		r.Route("/{productId}", func(r chi.Router) {
			r.Get("/", controllers.GetProductByID(productService, logg))
			r.Put("/", controllers.UpdateProduct(productService, logg))
			r.Patch("/stock", controllers.UpdateProductStock(productService, logg))
			r.Delete("/", controllers.DeleteProduct(productService, logg))
		})
	})

	return r
}
