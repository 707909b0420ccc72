package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/qwertymuzaffar/retail-backoffice/api/controllers"
	"github.com/qwertymuzaffar/retail-backoffice/api/middleware"
	customersvc "github.com/qwertymuzaffar/retail-backoffice/internal/customers"
	inventorysvc "github.com/qwertymuzaffar/retail-backoffice/internal/inventory"
	ordersvc "github.com/qwertymuzaffar/retail-backoffice/internal/orders"
	productsvc "github.com/qwertymuzaffar/retail-backoffice/internal/products"
	storesvc "github.com/qwertymuzaffar/retail-backoffice/internal/stores"
	"github.com/qwertymuzaffar/retail-backoffice/pkg/config"
	"github.com/qwertymuzaffar/retail-backoffice/pkg/db"
	"github.com/qwertymuzaffar/retail-backoffice/pkg/logger"
	"github.com/qwertymuzaffar/retail-backoffice/pkg/metrics"
	pkgredis "github.com/qwertymuzaffar/retail-backoffice/pkg/redis"
)

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *pkgredis.Client
	Registry    *prometheus.Registry
	HTTPMetrics *metrics.HTTPMetrics

	Inventory inventorysvc.Service
	Stores    storesvc.Service
	Products  productsvc.Service
	Customers customersvc.Service
	Orders    ordersvc.Service
}

// NewRouter assembles the HTTP surface.
func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	var idemStore pkgredis.IdempotencyStore
	if deps.Redis != nil {
		idemStore = deps.Redis
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(idemStore, logg))

		r.Route("/inventory", func(r chi.Router) {
			r.Put("/", controllers.InventoryUpsert(deps.Inventory, logg))
			r.Post("/", controllers.InventoryCreate(deps.Inventory, logg))
			r.Get("/{storeId}", controllers.InventoryByStore(deps.Inventory, logg))
			r.Get("/filter/{category}/{name}/{storeId}", controllers.InventoryFilter(deps.Inventory, logg))
			r.Get("/search/{name}/{storeId}", controllers.InventorySearch(deps.Inventory, logg))
			r.Delete("/{productId}", controllers.InventoryRemoveProduct(deps.Inventory, logg))
			r.Get("/validate/{quantity}/{storeId}/{productId}", controllers.InventoryValidateStock(deps.Inventory, logg))
		})

		r.Route("/store", func(r chi.Router) {
			r.Post("/", controllers.StoreCreate(deps.Stores, logg))
			r.Get("/", controllers.StoreList(deps.Stores, logg))
			r.Get("/validate/{storeId}", controllers.StoreValidate(deps.Stores, logg))
			r.Get("/search/{name}", controllers.StoreSearch(deps.Stores, logg))
			r.Post("/placeOrder", controllers.StorePlaceOrder(deps.Orders, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.ProductCreate(deps.Products, logg))
			r.Get("/", controllers.ProductList(deps.Products, logg))
			r.Get("/{productId}", controllers.ProductGet(deps.Products, logg))
			r.Put("/{productId}", controllers.ProductUpdate(deps.Products, logg))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.CustomerLookup(deps.Customers, logg))
			r.Get("/{customerId}", controllers.CustomerGet(deps.Customers, logg))
			r.Get("/{customerId}/orders", controllers.CustomerOrders(deps.Customers, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/{orderId}", controllers.OrderGet(deps.Orders, logg))
		})
	})

	return r
}
