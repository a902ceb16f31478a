package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/formosafoodlab/nightmarket-atlas/api/controllers"
	"github.com/formosafoodlab/nightmarket-atlas/api/middleware"
	"github.com/formosafoodlab/nightmarket-atlas/internal/markets"
	"github.com/formosafoodlab/nightmarket-atlas/internal/references"
	"github.com/formosafoodlab/nightmarket-atlas/internal/vendors"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/config"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/logger"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/metrics"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Metrics     *metrics.HTTPMetrics
	MetricsPage http.Handler
	Pingers     map[string]controllers.Pinger

	Markets    markets.Service
	Vendors    vendors.Service
	References references.Service
}

// NewRouter assembles the HTTP surface: health probes, metrics and the
// versioned JSON API.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, deps.Pingers))
	})

	if deps.MetricsPage != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsPage)
	} else {
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", controllers.Ping())
		r.Get("/map/config", controllers.MapConfig(deps.Config.Maps))

		r.Route("/markets", func(r chi.Router) {
			r.Get("/", controllers.MarketList(deps.Markets, deps.Logger))
			r.Post("/", controllers.MarketCreate(deps.Markets, deps.Logger))
			r.Get("/{marketId}", controllers.MarketDetail(deps.Markets, deps.Logger))
			r.Put("/{marketId}", controllers.MarketUpdate(deps.Markets, deps.Logger))
			r.Delete("/{marketId}", controllers.MarketDelete(deps.Markets, deps.Logger))
		})

		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", controllers.VendorList(deps.Vendors, deps.Logger))
			r.Post("/", controllers.VendorCreate(deps.Vendors, deps.Logger))
			r.Get("/{vendorId}", controllers.VendorDetail(deps.Vendors, deps.Logger))
			r.Put("/{vendorId}", controllers.VendorUpdate(deps.Vendors, deps.Logger))
			r.Delete("/{vendorId}", controllers.VendorDelete(deps.Vendors, deps.Logger))
		})

		r.Get("/references", controllers.ReferenceList(deps.References, deps.Logger))
	})

	return r
}
