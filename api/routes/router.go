package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stridekart/backend/api/controllers"
	"github.com/stridekart/backend/api/middleware"
	"github.com/stridekart/backend/internal/accounts"
	"github.com/stridekart/backend/internal/cart"
	"github.com/stridekart/backend/internal/catalog"
	"github.com/stridekart/backend/internal/complaints"
	"github.com/stridekart/backend/internal/orders"
	"github.com/stridekart/backend/internal/reviews"
	"github.com/stridekart/backend/pkg/auth/session"
	"github.com/stridekart/backend/pkg/config"
	"github.com/stridekart/backend/pkg/logger"
	"github.com/stridekart/backend/pkg/metrics"
	"github.com/stridekart/backend/pkg/redis"
)

// RouterParams bundles everything the HTTP surface needs.
type RouterParams struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              controllers.Pinger
	Redis           *redis.Client
	SessionManager  *session.Manager
	HTTPMetrics     *metrics.HTTPMetrics
	ProfileLoader   middleware.ProfileLoader
	AccountService  accounts.Service
	RegisterService accounts.RegisterService
	CatalogService  catalog.Service
	CartService     cart.Service
	OrderService    orders.Service
	ReviewService   reviews.Service
	ComplaintSvc    complaints.Service
}

// NewRouter assembles the public, customer, vendor and admin route trees.
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

	authed := func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.SessionManager, logg))
		r.Use(middleware.ActiveProfileGate(p.ProfileLoader, p.SessionManager, logg))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, p.DB, p.Redis, logg))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, p.Redis, logg)).
			Post("/register", controllers.RegisterCustomer(p.RegisterService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, p.Redis, logg)).
			Post("/vendor/register", controllers.RegisterVendor(p.RegisterService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).
			Post("/login", controllers.CustomerLogin(p.AccountService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).
			Post("/vendor/login", controllers.VendorLogin(p.AccountService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).
			Post("/admin/login", controllers.AdminLogin(p.AccountService, logg))

		r.Group(func(r chi.Router) {
			authed(r)
			r.Post("/logout", controllers.Logout(p.AccountService, logg))
			r.Get("/me", controllers.Me(p.AccountService, logg))
		})
	})

	// Browsing needs no account.
	r.Route("/api/v1/shop", func(r chi.Router) {
		r.Get("/products", controllers.ShopListProducts(p.CatalogService, logg))
		r.Get("/products/{slug}", controllers.ShopGetProduct(p.CatalogService, logg))
		r.Get("/products/{productID}/reviews", controllers.ShopListProductReviews(p.ReviewService, logg))
		r.Get("/categories", controllers.ShopListCategories(p.CatalogService, logg))
		r.Get("/sizes", controllers.ShopListSizes(p.CatalogService, logg))
		r.Get("/colors", controllers.ShopListColors(p.CatalogService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		authed(r)
		r.Use(middleware.RedirectSpecialUsers(logg))

		r.Route("/addresses", func(r chi.Router) {
			r.Get("/", controllers.ListShippingAddresses(p.AccountService, logg))
			r.Post("/", controllers.AddShippingAddress(p.AccountService, logg))
			r.Delete("/{addressID}", controllers.RemoveShippingAddress(p.AccountService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(p.CartService, logg))
			r.Post("/items", controllers.AddCartItem(p.CartService, logg))
			r.Patch("/items/{itemID}", controllers.UpdateCartItem(p.CartService, logg))
			r.Delete("/items/{itemID}", controllers.RemoveCartItem(p.CartService, logg))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.ListWishlist(p.CartService, logg))
			r.Post("/{variantID}", controllers.ToggleWishlistItem(p.CartService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/checkout", controllers.Checkout(p.OrderService, logg))
			r.Get("/", controllers.ListOrders(p.OrderService, logg))
			r.Get("/{orderID}", controllers.GetOrder(p.OrderService, logg))
			r.Delete("/{orderID}", controllers.DeleteOrder(p.OrderService, logg))
			r.Post("/{orderID}/payment", controllers.RecordOrderPayment(p.OrderService, logg))
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Post("/products/{productID}", controllers.CreateReview(p.ReviewService, logg))
			r.Delete("/{reviewID}", controllers.DeleteReview(p.ReviewService, logg))
		})

		r.Route("/complaints", func(r chi.Router) {
			r.Post("/", controllers.FileComplaint(p.ComplaintSvc, logg))
			r.Get("/", controllers.ListMyComplaints(p.ComplaintSvc, logg))
		})
	})

	r.Route("/api/v1/vendor", func(r chi.Router) {
		authed(r)
		r.Use(middleware.RequireVendor(logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.VendorListProducts(p.CatalogService, logg))
			r.Post("/", controllers.VendorCreateProduct(p.CatalogService, logg))
			r.Patch("/{productID}", controllers.VendorUpdateProduct(p.CatalogService, logg))
			r.Delete("/{productID}", controllers.VendorDeleteProduct(p.CatalogService, logg))
			r.Post("/{productID}/variants", controllers.VendorAddVariant(p.CatalogService, logg))
		})
		r.Route("/variants", func(r chi.Router) {
			r.Patch("/{variantID}", controllers.VendorUpdateVariant(p.CatalogService, logg))
			r.Delete("/{variantID}", controllers.VendorDeleteVariant(p.CatalogService, logg))
		})
		r.Route("/shipments", func(r chi.Router) {
			r.Get("/", controllers.VendorListShipments(p.OrderService, logg))
			r.Post("/{shipmentID}/transition", controllers.VendorTransitionShipment(p.OrderService, logg))
		})
		r.Route("/attribute-requests", func(r chi.Router) {
			r.Get("/", controllers.VendorListAttributeRequests(p.CatalogService, logg))
			r.Post("/", controllers.VendorSubmitAttributeRequest(p.CatalogService, logg))
		})
	})

	r.Route("/api/v1/admin", func(r chi.Router) {
		authed(r)
		r.Use(middleware.RequireAdmin(logg))

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", controllers.AdminCreateCategory(p.CatalogService, logg))
			r.Patch("/{categoryID}", controllers.AdminUpdateCategory(p.CatalogService, logg))
			r.Delete("/{categoryID}", controllers.AdminDeleteCategory(p.CatalogService, logg))
		})
		r.Route("/sizes", func(r chi.Router) {
			r.Post("/", controllers.AdminCreateSize(p.CatalogService, logg))
			r.Patch("/{sizeID}", controllers.AdminUpdateSize(p.CatalogService, logg))
			r.Delete("/{sizeID}", controllers.AdminDeleteSize(p.CatalogService, logg))
		})
		r.Route("/colors", func(r chi.Router) {
			r.Post("/", controllers.AdminCreateColor(p.CatalogService, logg))
			r.Patch("/{colorID}", controllers.AdminUpdateColor(p.CatalogService, logg))
			r.Delete("/{colorID}", controllers.AdminDeleteColor(p.CatalogService, logg))
		})

		r.Post("/customers/{profileID}/block", controllers.AdminBlockCustomer(p.AccountService, logg))
		r.Post("/vendors/{profileID}/block", controllers.AdminBlockVendor(p.AccountService, logg))
		r.Delete("/accounts/{accountID}", controllers.AdminDeleteAccount(p.AccountService, logg))

		r.Post("/products/{productID}/trending", controllers.AdminSetProductTrending(p.CatalogService, logg))

		r.Route("/complaints", func(r chi.Router) {
			r.Get("/", controllers.AdminListComplaints(p.ComplaintSvc, logg))
			r.Post("/{complaintID}/resolve", controllers.AdminResolveComplaint(p.ComplaintSvc, logg))
		})
		r.Route("/attribute-requests", func(r chi.Router) {
			r.Get("/", controllers.AdminListAttributeRequests(p.CatalogService, logg))
			r.Post("/{requestID}/decide", controllers.AdminDecideAttributeRequest(p.CatalogService, logg))
		})
	})

	return r
}
