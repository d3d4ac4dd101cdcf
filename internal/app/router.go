package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	carthandler "github.com/mkarpenko/storefront/internal/handler/cart"
	cataloghandler "github.com/mkarpenko/storefront/internal/handler/catalog"
	"github.com/mkarpenko/storefront/internal/handler/middleware"
	orderhandler "github.com/mkarpenko/storefront/internal/handler/order"
	returnhandler "github.com/mkarpenko/storefront/internal/handler/returns"
	userhandler "github.com/mkarpenko/storefront/internal/handler/user"
	wallethandler "github.com/mkarpenko/storefront/internal/handler/wallet"
	"github.com/mkarpenko/storefront/internal/service"
	"github.com/mkarpenko/storefront/pkg/metrics"
)

func (app *App) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.WithMetrics(app.Metrics))
	r.Use(middleware.WithGzip)
	r.Use(middleware.WithAuth(app.Config))

	store := app.Store
	locks := service.NewUserLocks()

	userService := service.NewUserService(store, app.Config)
	userHandler := userhandler.New(userService)

	catalogService := service.NewCatalogService(store)
	catalogHandler := cataloghandler.New(catalogService)

	cartService := service.NewCartService(store, store)
	cartHandler := carthandler.New(cartService)

	ledgerService := service.NewLedgerService(store, locks)
	walletHandler := wallethandler.New(ledgerService)

	// the order and return services debit/credit through the repository
	// directly; the per-user lock is already held when they do
	orderService := service.NewOrderService(store, store, store, app.Events, locks,
		app.Config.DeliveryLeadDays, app.Config.ReturnWindowDays)
	orderHandler := orderhandler.New(orderService)

	returnService := service.NewReturnService(store, store, store, app.Events, locks, app.Config.RefundPerUnit)
	returnHandler := returnhandler.New(returnService)

	r.Route("/api", func(r chi.Router) {
		r.Post("/user/register", userHandler.Register)
		r.Post("/user/login", userHandler.Login)

		r.Get("/products", catalogHandler.Products)
		r.Get("/products/{id}", catalogHandler.Product)
		r.Get("/brands", catalogHandler.Brands)
		r.Get("/shops", catalogHandler.Shops)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.Cart)
			r.Post("/", cartHandler.AddItem)
			r.Delete("/", cartHandler.Clear)
			r.Patch("/{id}", cartHandler.UpdateItem)
			r.Delete("/{id}", cartHandler.RemoveItem)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", orderHandler.Checkout)
			r.Get("/", orderHandler.Orders)
			r.Get("/{id}", orderHandler.Order)
			r.Patch("/{id}/cancel", orderHandler.Cancel)
			r.Patch("/{id}/status", orderHandler.SetStatus)
		})

		r.Route("/returns", func(r chi.Router) {
			r.Get("/", returnHandler.Returns)
			r.Post("/", returnHandler.Request)
			r.Patch("/{id}", returnHandler.Resolve)
		})

		r.Route("/wallet", func(r chi.Router) {
			r.Get("/balance", walletHandler.Balance)
			r.Get("/transactions", walletHandler.Transactions)
			r.Post("/deposit", walletHandler.Deposit)
			r.Post("/withdraw", walletHandler.Withdraw)
		})
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}
