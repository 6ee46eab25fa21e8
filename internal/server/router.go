package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nikolayk812/storefront/internal/access"
	"github.com/nikolayk812/storefront/internal/handlers"
	"github.com/nikolayk812/storefront/internal/mw"
	"github.com/nikolayk812/storefront/internal/permission"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/nikolayk812/storefront/internal/session"
)

type Options struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
	Session        session.Options
}

type Deps struct {
	Goods     *service.Goods
	Offers    *service.Offers
	Purchases *service.Purchases
	Orders    *service.Orders
	MyOrders  *service.MyOrders
	Settings  *service.Settings
	Auth      *service.Auth

	Sessions session.Store
	Perms    permission.Store
	// DB is optional, healthz skips the ping without it.
	DB handlers.Pinger
}

func BuildRouter(d Deps, opts Options) http.Handler {
	r := chi.NewRouter()

	// baseline
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "X-Trace-ID"},
			ExposedHeaders:   []string{"X-Trace-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// tracing + logger
	r.Use(mw.Trace())
	r.Use(mw.Logger(mw.DefaultLogOpts()))

	r.Get("/healthz", handlers.Healthz(d.DB))
	r.Get("/version", handlers.Version)

	r.Route("/api", func(api chi.Router) {
		if opts.RequestTimeout > 0 {
			api.Use(middleware.Timeout(opts.RequestTimeout))
		}
		api.Use(session.NewManager(d.Sessions, opts.Session).Middleware)
		api.Use(mw.Subject(d.Perms))

		mountGoods(api, handlers.NewGoodHandler(d.Goods))
		mountOffers(api, handlers.NewOfferHandler(d.Offers))
		mountPurchases(api, handlers.NewPurchaseHandler(d.Purchases))
		mountOrders(api, handlers.NewOrderHandler(d.Orders))
		mountMyOrders(api, handlers.NewMyOrderHandler(d.MyOrders))
		mountSettings(api, handlers.NewSettingHandler(d.Settings))

		auth := handlers.NewAuthHandler(d.Auth)
		api.Post("/auth/login", auth.Login)
		api.Post("/auth/logout", auth.Logout)
	})

	return r
}

func mountGoods(r chi.Router, h *handlers.GoodHandler) {
	r.Route("/goods", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Patch("/{id}", h.PartialUpdate)
		r.Delete("/{id}", h.Destroy)
	})
}

func mountOffers(r chi.Router, h *handlers.OfferHandler) {
	r.Route("/offers", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Patch("/{id}", h.PartialUpdate)
		r.Delete("/{id}", h.Destroy)
	})
}

// purchases are read-only, writes still go through the policy for a proper 401 or 403
func mountPurchases(r chi.Router, h *handlers.PurchaseHandler) {
	r.Route("/purchases", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Deny(access.ActionCreate))
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Deny(access.ActionUpdate))
		r.Patch("/{id}", h.Deny(access.ActionPartialUpdate))
		r.Delete("/{id}", h.Deny(access.ActionDestroy))
	})
}

func mountOrders(r chi.Router, h *handlers.OrderHandler) {
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Deny(access.ActionCreate))
		r.Get("/{id}", h.Get)
		r.Get("/{id}/status-history", h.StatusHistory)
		r.Put("/{id}", h.Update)
		r.Patch("/{id}", h.PartialUpdate)
		r.Delete("/{id}", h.Deny(access.ActionDestroy))
	})
}

func mountMyOrders(r chi.Router, h *handlers.MyOrderHandler) {
	r.Route("/buyer/orders", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Patch("/{id}", h.PartialUpdate)
		r.Delete("/{id}", h.Destroy)
	})
}

func mountSettings(r chi.Router, h *handlers.SettingHandler) {
	r.Route("/settings", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{name}", h.Get)
		r.Put("/{name}", h.Update)
		r.Patch("/{name}", h.PartialUpdate)
		r.Delete("/{name}", h.Destroy)
	})
}
