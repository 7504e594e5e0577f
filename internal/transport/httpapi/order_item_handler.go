package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/service/aggregate"
)

// OrderItemHandler обслуживает маршруты позиций заказа.
type OrderItemHandler struct {
	items  *aggregate.OrderItemService
	logger *log.Entry
}

// NewOrderItemHandler создает обработчик маршрутов позиций.
func NewOrderItemHandler(items *aggregate.OrderItemService) *OrderItemHandler {
	return &OrderItemHandler{
		items:  items,
		logger: log.WithField("component", "order-item-handler"),
	}
}

// ListByOrder обслуживает GET /orders/{id}/items.
func (h *OrderItemHandler) ListByOrder(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.ListByOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, toOrderItemResponses(items), h.logger)
}

// Add обслуживает POST /orders/{id}/items: позиция добавляется,
// сумма заказа увеличивается на её стоимость.
func (h *OrderItemHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req orderItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, []string{"body: invalid json"}, h.logger)
		return
	}
	if errs := req.validate(""); len(errs) > 0 {
		writeValidationError(w, errs, h.logger)
		return
	}

	item, err := h.items.AddItem(r.Context(), chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderItemResponse(item), h.logger)
}

// Update обслуживает PUT /order-items/{id}.
func (h *OrderItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req orderItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, []string{"body: invalid json"}, h.logger)
		return
	}
	if errs := req.validate(""); len(errs) > 0 {
		writeValidationError(w, errs, h.logger)
		return
	}

	item, err := h.items.UpdateItem(r.Context(), chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, toOrderItemResponse(item), h.logger)
}

// Delete обслуживает DELETE /order-items/{id}: стоимость позиции
// вычитается из суммы заказа.
func (h *OrderItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.items.DeleteItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
