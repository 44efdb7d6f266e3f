package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/minishoplabs/minishop-backend/api/controllers"
	"github.com/minishoplabs/minishop-backend/api/middleware"
	accountsvc "github.com/minishoplabs/minishop-backend/internal/accounts"
	cartsvc "github.com/minishoplabs/minishop-backend/internal/cart"
	catalogsvc "github.com/minishoplabs/minishop-backend/internal/catalog"
	ordersvc "github.com/minishoplabs/minishop-backend/internal/orders"
	"github.com/minishoplabs/minishop-backend/pkg/auth/session"
	"github.com/minishoplabs/minishop-backend/pkg/config"
	"github.com/minishoplabs/minishop-backend/pkg/logger"
	"github.com/minishoplabs/minishop-backend/pkg/metrics"
	"github.com/minishoplabs/minishop-backend/pkg/redis"
)

// RouterParams bundles everything the HTTP surface depends on.
type RouterParams struct {
	Config      *config.Config
	Logger      *logger.Logger
	DBPinger    controllers.Pinger
	RedisClient *redis.Client
	Sessions    session.AccessSessionChecker
	HTTPMetrics *metrics.HTTPMetrics

	Accounts accountsvc.Service
	Catalog  catalogsvc.Service
	Cart     cartsvc.Service
	Orders   ordersvc.Service

	MetricsHandler http.Handler
}

// NewRouter wires the middleware chain and every route group.
func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, p.DBPinger, redisPinger(p.RedisClient)))
	})

	metricsHandler := p.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, p.RedisClient, logg)).
			Post("/register", controllers.Register(p.Accounts, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, p.RedisClient, logg)).
			Post("/login", controllers.Login(p.Accounts, logg))
		r.With(middleware.Auth(cfg.JWT, p.Sessions, logg)).
			Post("/logout", controllers.Logout(p.Accounts, logg))
	})

	// catalog reads are public
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(p.Catalog, logg))
		r.Get("/search", controllers.SearchProducts(p.Catalog, logg))
		r.Get("/{productID}", controllers.GetProduct(p.Catalog, logg))
	})

	// flat array shape kept for older storefront widgets
	r.Get("/api/products", controllers.ListProductsLegacy(p.Catalog, logg))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.Sessions, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(p.Cart, logg))
			r.Post("/items", controllers.AddCartItem(p.Cart, logg))
			r.Delete("/items/{productID}", controllers.RemoveCartItem(p.Cart, logg))
		})

		r.Post("/checkout", controllers.Checkout(p.Orders, logg))
		r.Get("/orders", controllers.ListOrders(p.Orders, logg))

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AdminOnly(logg))
			r.Post("/products", controllers.CreateProduct(p.Catalog, logg))
			r.Put("/products/{productID}", controllers.UpdateProduct(p.Catalog, logg))
			r.Delete("/products/{productID}", controllers.DeleteProduct(p.Catalog, logg))
		})
	})

	return r
}

// redisPinger keeps a typed nil *redis.Client from reaching the readiness
// probe as a non-nil interface.
func redisPinger(client *redis.Client) controllers.Pinger {
	if client == nil {
		return nil
	}
	return client
}
