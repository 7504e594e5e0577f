package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/service/aggregate"
)

// OrderHandler обслуживает маршруты /orders.
type OrderHandler struct {
	orders *aggregate.OrderService
	logger *log.Entry
}

// NewOrderHandler создает обработчик маршрутов заказов.
func NewOrderHandler(orders *aggregate.OrderService) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		logger: log.WithField("component", "order-handler"),
	}
}

// Get обслуживает GET /orders/{id}: составное представление с клиентом
// и позициями.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	details, err := h.orders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, toOrderDetailsResponse(details), h.logger)
}

// Create обслуживает POST /orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, []string{"body: invalid json"}, h.logger)
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		writeValidationError(w, errs, h.logger)
		return
	}

	details, err := h.orders.Create(r.Context(), req.toInput())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderDetailsResponse(details), h.logger)
}

// Update обслуживает PUT /orders/{id}.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, []string{"body: invalid json"}, h.logger)
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		writeValidationError(w, errs, h.logger)
		return
	}

	order, err := h.orders.Update(r.Context(), chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order), h.logger)
}

// Delete обслуживает DELETE /orders/{id}: заказ удаляется вместе с
// позициями.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
