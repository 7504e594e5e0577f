package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/metrics"
	"github.com/vladislavdragonenkov/orders/internal/service/aggregate"
)

// NewRouter собирает chi-маршрутизатор API со всеми middleware.
func NewRouter(
	customers *aggregate.CustomerService,
	orders *aggregate.OrderService,
	items *aggregate.OrderItemService,
	m *metrics.APIMetrics,
) http.Handler {
	customerHandler := NewCustomerHandler(customers, orders)
	orderHandler := NewOrderHandler(orders)
	itemHandler := NewOrderItemHandler(items)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(requestLogger(log.WithField("component", "http-api")))
	if m != nil {
		r.Use(instrumentRequests(m))
	}

	r.Route("/customers", func(r chi.Router) {
		r.Get("/", customerHandler.List)
		r.Post("/", customerHandler.Create)
		r.Get("/{id}", customerHandler.Get)
		r.Put("/{id}", customerHandler.Update)
		r.Delete("/{id}", customerHandler.Delete)
		r.Get("/{id}/orders", customerHandler.ListOrders)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", orderHandler.Create)
		r.Get("/{id}", orderHandler.Get)
		r.Put("/{id}", orderHandler.Update)
		r.Delete("/{id}", orderHandler.Delete)
		r.Get("/{id}/items", itemHandler.ListByOrder)
		r.Post("/{id}/items", itemHandler.Add)
	})

	r.Route("/order-items", func(r chi.Router) {
		r.Put("/{id}", itemHandler.Update)
		r.Delete("/{id}", itemHandler.Delete)
	})

	return r
}
