package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/images"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/logging"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/telegram"
)

type Deps struct {
	Catalog  CatalogService
	Carts    CartService
	Orders   OrderService
	Settings SettingsService
	Images   images.Uploader

	Verifier *telegram.Verifier
	Admin    *telegram.AdminGuard

	Logger           zerolog.Logger
	CORSAllowOrigins []string
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(d.Logger))
	r.Use(middleware.Recoverer)
	r.Use(CORS(d.CORSAllowOrigins))

	shop := NewShopHandler(d.Settings, d.Verifier, d.Admin, d.Logger)
	cat := NewCatalogHandler(d.Catalog, d.Logger)
	carts := NewCartHandler(d.Carts, d.Orders, d.Settings, d.Logger)
	orders := NewOrderHandler(d.Orders, d.Admin, d.Logger)
	settings := NewSettingsHandler(d.Settings, d.Logger)
	imgs := NewImageHandler(d.Images, d.Logger)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/shop", shop.GetShop)
		r.Get("/me", shop.Me)

		r.Get("/categories", cat.ListCategories)
		r.Get("/products", cat.ListProducts)
		r.Get("/products/{productId}", cat.GetProduct)

		r.Route("/cart/{userId}", func(r chi.Router) {
			r.Use(d.Admin.RequireUser("userId"))

			r.Get("/", carts.GetCart)
			r.Delete("/", carts.ClearCart)
			r.Post("/items", carts.AddItem)
			r.Patch("/items/{lineId}", carts.UpdateItem)
			r.Delete("/items/{lineId}", carts.RemoveItem)
			r.Post("/checkout", carts.Checkout)
		})

		r.With(d.Admin.RequireUser("userId")).Get("/users/{userId}/orders", orders.ListOrdersByUser)
		r.With(d.Admin.RequireUser("")).Get("/orders/{orderId}", orders.GetOrder)

		r.Route("/admin", func(r chi.Router) {
			r.Use(d.Admin.RequireAdmin)

			r.Post("/categories", cat.CreateCategory)
			r.Put("/categories/{categoryId}", cat.RenameCategory)
			r.Delete("/categories/{categoryId}", cat.DeleteCategory)

			r.Post("/products", cat.CreateProduct)
			r.Put("/products/{productId}", cat.UpdateProduct)
			r.Delete("/products/{productId}", cat.DeleteProduct)

			r.Post("/images", imgs.Upload)

			r.Get("/orders", orders.ListAllOrders)
			r.Patch("/orders/{orderId}/status", orders.SetStatus)

			r.Get("/settings/{key}", settings.GetSetting)
			r.Put("/settings/{key}", settings.PutSetting)
		})
	})

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "storefront-service",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
