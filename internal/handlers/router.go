package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/middleware"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/models"
)

// API bundles every handler the router mounts
type API struct {
	Health   *HealthHandler
	Products *ProductHandler
	Cart     *CartHandler
	Orders   *OrderHandler
	Slides   *SlideHandler
	Options  *OptionHandler
	Settings *SettingsHandler
	Reports  *ReportHandler
	Auth     *AuthHandler
	Uploads  *UploadHandler
}

type RouterOptions struct {
	AllowedOrigins []string
	UploadDir      string // served under /uploads/ when set
	RequestTimeout time.Duration
	Authenticator  middleware.Authenticator
}

// NewRouter builds the chi router for the public storefront and admin API
func NewRouter(api API, opts RouterOptions, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	if opts.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(opts.RequestTimeout))
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", CartIDHeader},
		ExposedHeaders:   []string{"Link", CartIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", api.Health.ServeHTTP)

	if opts.UploadDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadDir)))
		r.Get("/uploads/*", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
			fs.ServeHTTP(w, r)
		})
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", api.Products.ListProducts)
		r.Get("/products/{productId}", api.Products.GetProduct)
		r.Get("/products/{productId}/whatsapp", api.Products.WhatsAppLink)
		r.Get("/pricing/discount", api.Products.GlobalDiscount)

		r.Get("/slides", api.Slides.ListSlides)
		r.Get("/subcategories", api.Options.List(models.OptionSubcategory))
		r.Get("/sizes", api.Options.List(models.OptionSize))
		r.Get("/colors", api.Options.List(models.OptionColor))
		r.Get("/settings", api.Settings.PublicSettings)

		r.Get("/cart", api.Cart.GetCart)
		r.Delete("/cart", api.Cart.ClearCart)
		r.Post("/cart/items", api.Cart.AddItem)
		r.Patch("/cart/items", api.Cart.UpdateItem)
		r.Delete("/cart/items", api.Cart.RemoveItem)

		r.Post("/orders", api.Orders.CreateOrder)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/auth/login", api.Auth.Login)
			r.Post("/auth/signup", api.Auth.SignUp)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminAuth(opts.Authenticator, log))

				r.Get("/me", api.Auth.Me)

				r.Get("/products", api.Products.AdminListProducts)
				r.Post("/products", api.Products.CreateProduct)
				r.Put("/products/{productId}", api.Products.UpdateProduct)
				r.Delete("/products/{productId}", api.Products.DeleteProduct)

				r.Post("/uploads", api.Uploads.Upload)

				r.Get("/orders", api.Orders.ListOrders)
				r.Get("/orders/{orderId}", api.Orders.GetOrder)
				r.Delete("/orders/{orderId}", api.Orders.DeleteOrder)
				r.Patch("/orders/{orderId}/status", api.Orders.UpdateStatus)

				r.Get("/slides", api.Slides.ListSlides)
				r.Post("/slides", api.Slides.CreateSlide)
				r.Put("/slides/order", api.Slides.ReorderSlides)
				r.Put("/slides/{slideId}", api.Slides.UpdateSlide)
				r.Delete("/slides/{slideId}", api.Slides.DeleteSlide)

				for _, kind := range []models.OptionKind{models.OptionSubcategory, models.OptionSize, models.OptionColor} {
					r.Get("/"+string(kind), api.Options.List(kind))
					r.Post("/"+string(kind), api.Options.Create(kind))
					r.Delete("/"+string(kind)+"/{id}", api.Options.Delete(kind))
				}

				r.Get("/settings", api.Settings.ListSettings)
				r.Put("/settings/{key}", api.Settings.UpdateSetting)

				r.Get("/reports", api.Reports.StockReport)
			})
		})
	})

	return r
}
