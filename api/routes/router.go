package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefront-backend/api/controllers"
	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/internal/browse"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

// Dependencies are the services the HTTP surface is wired to.
type Dependencies struct {
	Docs     controllers.Pinger
	Broker   controllers.Subscriber
	Catalog  controllers.Catalog
	Browse   browse.Service
	Settings controllers.SettingsStore
	Carts    controllers.CartStore
	Editor   controllers.ProductEditor
	Metrics  prometheus.Gatherer
	Feeds    Feeds
}

// Feeds reload documents for the per-document event streams.
type Feeds struct {
	Settings controllers.SettingsFeed
	Catalog  controllers.CatalogFeed
	Carts    controllers.CartFeed
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.ClientOrigin(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Docs))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsBrowse(deps.Browse, logg))
			r.Get("/stream", controllers.CatalogStream(deps.Feeds.Catalog, controllers.DefaultHeartbeat, logg))
			r.Get("/featured", controllers.ProductsFeatured(deps.Catalog, logg))
			r.Get("/discounted", controllers.ProductsDiscounted(deps.Catalog, logg))
			r.Get("/new-arrivals", controllers.ProductsNewArrivals(deps.Catalog, logg))
			r.Get("/type/{type}", controllers.ProductsByType(deps.Catalog, logg))
			r.Get("/category/{category}", controllers.ProductsByCategory(deps.Catalog, logg))
			r.Get("/{productId}", controllers.ProductDetail(deps.Catalog, logg))
		})

		r.Get("/settings", controllers.SettingsFetch(deps.Settings, logg))
		r.Get("/settings/stream", controllers.SettingsStream(deps.Feeds.Settings, controllers.DefaultHeartbeat, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.CartID(logg))
			r.Get("/", controllers.CartFetch(deps.Carts, logg))
			r.Get("/stream", controllers.CartStream(deps.Feeds.Carts, controllers.DefaultHeartbeat, logg))
			r.Delete("/", controllers.CartClear(deps.Carts, logg))
			r.Post("/items", controllers.CartAddItem(deps.Carts, deps.Catalog, logg))
			r.Patch("/items", controllers.CartUpdateQuantity(deps.Carts, logg))
			r.Delete("/items", controllers.CartRemoveItem(deps.Carts, logg))
		})

		r.Get("/events", controllers.Events(deps.Broker, controllers.DefaultHeartbeat, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.AdminProductList(deps.Editor, logg))
			r.Put("/", controllers.AdminProductSave(deps.Editor, logg))
			r.Get("/draft", controllers.AdminProductDraft(deps.Editor, logg))
			r.Delete("/{productId}", controllers.AdminProductDelete(deps.Editor, logg))
		})
		r.Get("/categories", controllers.AdminCategories(deps.Editor, logg))
		r.Put("/settings", controllers.AdminSettingsUpdate(deps.Settings, logg))
	})

	return r
}
