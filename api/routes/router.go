package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cmbeauty/storefront-backend/api/controllers"
	"github.com/cmbeauty/storefront-backend/api/middleware"
	authsvc "github.com/cmbeauty/storefront-backend/internal/auth"
	"github.com/cmbeauty/storefront-backend/internal/cart"
	"github.com/cmbeauty/storefront-backend/internal/catalog"
	checkoutsvc "github.com/cmbeauty/storefront-backend/internal/checkout"
	"github.com/cmbeauty/storefront-backend/internal/history"
	"github.com/cmbeauty/storefront-backend/internal/reviews"
	"github.com/cmbeauty/storefront-backend/internal/users"
	"github.com/cmbeauty/storefront-backend/pkg/auth/session"
	"github.com/cmbeauty/storefront-backend/pkg/config"
	"github.com/cmbeauty/storefront-backend/pkg/db"
	"github.com/cmbeauty/storefront-backend/pkg/logger"
	redisclient "github.com/cmbeauty/storefront-backend/pkg/redis"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *redisclient.Client
	Sessions session.Checker
	Registry *prometheus.Registry

	Auth     authsvc.Service
	Users    users.Service
	Catalog  catalog.Service
	Reviews  reviews.Service
	Cart     cart.Service
	Checkout checkoutsvc.Service
	History  history.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Public catalog surface.
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(deps.Catalog, logg))
			r.Get("/search", controllers.ProductSearch(deps.Catalog, logg))
			r.Get("/category/{category}", controllers.ProductsByCategory(deps.Catalog, logg))
			r.Get("/{productId}", controllers.ProductDetail(deps.Catalog, logg))
			r.Get("/{productId}/reviews", controllers.ProductReviews(deps.Reviews, logg))
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", controllers.AuthRegister(deps.Users, deps.Auth, logg))
			r.Post("/login", controllers.AuthLogin(deps.Auth, logg))
		})

		// Signed-in shopper surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

			r.Post("/auth/logout", controllers.AuthLogout(deps.Auth, logg))

			r.Get("/me", controllers.Me(deps.Users, logg))
			r.Put("/me", controllers.MeUpdate(deps.Users, logg))

			r.Post("/products/{productId}/reviews", controllers.ReviewCreate(deps.Reviews, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(deps.Cart, logg))
				r.Post("/items", controllers.CartAdd(deps.Cart, logg))
				r.Patch("/items", controllers.CartUpdateQuantity(deps.Cart, logg))
				r.Delete("/items/{productId}", controllers.CartRemove(deps.Cart, logg))
			})

			r.Post("/checkout", controllers.Checkout(deps.Checkout, logg))
			r.Get("/orders", controllers.OrderHistory(deps.History, logg))
		})
	})

	return r
}
