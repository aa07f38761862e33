package wire

import (
	"cinema-api/internal/adaptor"
	"cinema-api/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireOrder configures order routes. Every route requires authentication
// and only ever exposes the caller's own orders.
func wireOrder(
	r chi.Router,
	orderHandler *adaptor.OrderHandler,
	log *zap.Logger,
) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Use(middleware.RequireAuth(log))

		r.Post("/", orderHandler.CreateOrder)     // POST /api/orders
		r.Get("/", orderHandler.GetOrders)        // GET /api/orders?page=1&per_page=10
		r.Get("/{id}", orderHandler.GetOrderByID) // GET /api/orders/{order-id}
	})
}
