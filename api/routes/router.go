package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/geocart/geocart-backend/api/controllers"
	"github.com/geocart/geocart-backend/api/middleware"
	authsvc "github.com/geocart/geocart-backend/internal/auth"
	cartsvc "github.com/geocart/geocart-backend/internal/cart"
	checkoutsvc "github.com/geocart/geocart-backend/internal/checkout"
	contactsvc "github.com/geocart/geocart-backend/internal/contacts"
	ordersvc "github.com/geocart/geocart-backend/internal/orders"
	productsvc "github.com/geocart/geocart-backend/internal/products"
	storesvc "github.com/geocart/geocart-backend/internal/stores"
	usersvc "github.com/geocart/geocart-backend/internal/users"
	"github.com/geocart/geocart-backend/pkg/auth/session"
	"github.com/geocart/geocart-backend/pkg/config"
	"github.com/geocart/geocart-backend/pkg/db"
	"github.com/geocart/geocart-backend/pkg/logger"
	"github.com/geocart/geocart-backend/pkg/metrics"
	"github.com/geocart/geocart-backend/pkg/redis"
)

// NewRouter assembles the full HTTP surface: public catalog and auth
// endpoints, the authenticated cart/checkout group, and the admin group.
// Idempotency runs after Auth inside the protected groups so replay
// records are scoped per user; the public signup/contact endpoints keep
// it in front with an anonymous scope.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessionChecker session.AccessSessionChecker,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
	authService authsvc.Service,
	userService usersvc.Service,
	storeService storesvc.Service,
	productService productsvc.Service,
	cartService cartsvc.Service,
	checkoutService checkoutsvc.Service,
	orderService ordersvc.Service,
	contactService contactsvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
		middleware.Metrics(httpMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	signupPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	requireAuth := middleware.Auth(cfg.JWT, sessionChecker, logg)
	requireAdmin := middleware.RequireRole("admin", logg)
	idempotent := middleware.Idempotency(redisClient, logg)
	rateLimited := func(policy middleware.AuthRateLimitPolicy) func(http.Handler) http.Handler {
		return middleware.AuthRateLimit(policy, redisClient, logg)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, redisClient, logg))
	})
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/stores/nearby", controllers.StoresNearby(storeService, logg))

		r.Route("/shops", func(r chi.Router) {
			r.Get("/", controllers.StoresList(storeService, logg))
			r.Get("/{storeId}", controllers.StoresGet(storeService, logg))
			r.Group(func(r chi.Router) {
				r.Use(requireAuth, requireAdmin, idempotent)
				r.Post("/", controllers.StoresCreate(storeService, logg))
				r.Delete("/{storeId}", controllers.StoresDelete(storeService, logg))
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsList(productService, logg))
			r.Group(func(r chi.Router) {
				r.Use(requireAuth, requireAdmin, idempotent)
				r.Post("/", controllers.ProductsCreate(productService, logg))
				r.Delete("/{productId}", controllers.ProductsDelete(productService, logg))
			})
		})

		r.Route("/contacts", func(r chi.Router) {
			r.With(idempotent).Post("/", controllers.ContactsCreate(contactService, logg))
			r.Group(func(r chi.Router) {
				r.Use(requireAuth, requireAdmin)
				r.Get("/", controllers.ContactsList(contactService, logg))
				r.Delete("/{contactId}", controllers.ContactsDelete(contactService, logg))
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.With(rateLimited(signupPolicy), idempotent).Post("/signup", controllers.UsersSignup(authService, logg))
			r.With(rateLimited(loginPolicy)).Post("/login", controllers.UsersLogin(authService, logg))
			r.With(requireAuth).Get("/me", controllers.UsersMe(userService, logg))
			r.Group(func(r chi.Router) {
				r.Use(requireAuth, requireAdmin)
				r.Get("/", controllers.UsersList(userService, logg))
				r.Delete("/{userId}", controllers.UsersDelete(userService, logg))
			})
		})

		r.With(rateLimited(loginPolicy)).Post("/admin/login", controllers.AdminLogin(authService, logg))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/refresh", controllers.AuthRefresh(authService, logg))
			r.With(requireAuth).Post("/logout", controllers.AuthLogout(authService, cartService, cfg.JWT, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", controllers.CartGet(cartService, logg))
			r.Post("/items", controllers.CartAddItem(cartService, logg))
			r.Patch("/items/{productId}", controllers.CartUpdateItem(cartService, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(cartService, logg))
			r.Put("/store", controllers.CartSelectStore(cartService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(requireAuth)
			r.With(idempotent).Post("/", controllers.OrdersSubmit(checkoutService, logg))
			r.Get("/", controllers.OrdersHistory(orderService, logg))
			r.Get("/{orderId}", controllers.OrdersGet(orderService, logg))
		})
	})

	return r
}
