package api

import (
	"net/http"

	"ecoshop/internal/api/handlers"
	"ecoshop/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handlers struct {
	Users          *handlers.UserHandler
	Brands         *handlers.BrandHandler
	Products       *handlers.ProductHandler
	Certifications *handlers.CertificationHandler
	Orders         *handlers.OrderHandler
	OrderItems     *handlers.OrderItemHandler
}

func NewRouter(h Handlers, log *logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(log.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/plain")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("EcoShop API OK"))
		})

		r.Route("/usuarios", func(r chi.Router) {
			r.Get("/", h.Users.GetAll)
			r.Post("/", h.Users.Create)
			r.Get("/{id}", h.Users.GetByID)
			r.Put("/{id}", h.Users.Update)
			r.Delete("/{id}", h.Users.Delete)
		})

		r.Route("/marcas", func(r chi.Router) {
			r.Get("/", h.Brands.GetAll)
			r.Post("/", h.Brands.Create)
			r.Get("/{id}", h.Brands.GetByID)
			r.Put("/{id}", h.Brands.Update)
			r.Delete("/{id}", h.Brands.Delete)
		})

		r.Route("/productos", func(r chi.Router) {
			r.Get("/", h.Products.GetAll)
			r.Post("/", h.Products.Create)
			r.Get("/{id}", h.Products.GetByID)
			r.Put("/{id}", h.Products.Update)
			r.Delete("/{id}", h.Products.Delete)
		})

		r.Route("/certifications", func(r chi.Router) {
			r.Get("/", h.Certifications.GetAll)
			r.Post("/", h.Certifications.Create)
			r.Get("/code/{code}", h.Certifications.GetByCode)
			r.Get("/{id}", h.Certifications.GetByID)
			r.Put("/{id}", h.Certifications.Update)
			r.Delete("/{id}", h.Certifications.Delete)
		})

		r.Route("/pedidos", func(r chi.Router) {
			r.Get("/", h.Orders.GetAll)
			r.Post("/", h.Orders.Create)
			r.Get("/usuario/{usuarioId}", h.Orders.GetByUser)
			r.Get("/{id}", h.Orders.GetByID)
			r.Patch("/{id}/estado", h.Orders.UpdateStatus)
			r.Delete("/{id}", h.Orders.Delete)
		})

		r.Route("/pedido-items", func(r chi.Router) {
			r.Post("/", h.OrderItems.Add)
			r.Get("/pedido/{pedidoId}", h.OrderItems.GetByOrder)
			r.Put("/{itemId}", h.OrderItems.UpdateQuantity)
			r.Delete("/{itemId}", h.OrderItems.Remove)
		})
	})

	return r
}
