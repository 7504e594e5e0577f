// Package httpapi содержит HTTP-границу сервиса: маршрутизацию,
// декодирование и валидацию запросов, трансляцию доменных ошибок в статусы.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/service/aggregate"
)

// CustomerHandler обслуживает маршруты /customers.
type CustomerHandler struct {
	customers *aggregate.CustomerService
	orders    *aggregate.OrderService
	logger    *log.Entry
}

// NewCustomerHandler создает обработчик клиентских маршрутов.
func NewCustomerHandler(customers *aggregate.CustomerService, orders *aggregate.OrderService) *CustomerHandler {
	return &CustomerHandler{
		customers: customers,
		orders:    orders,
		logger:    log.WithField("component", "customer-handler"),
	}
}

// List обслуживает GET /customers.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.List(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerResponses(customers), h.logger)
}

// Get обслуживает GET /customers/{id}.
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	customer, err := h.customers.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerResponse(customer), h.logger)
}

// Create обслуживает POST /customers.
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, []string{"body: invalid json"}, h.logger)
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		writeValidationError(w, errs, h.logger)
		return
	}

	customer, err := h.customers.Create(r.Context(), req.toInput())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, toCustomerResponse(customer), h.logger)
}

// Update обслуживает PUT /customers/{id}.
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, []string{"body: invalid json"}, h.logger)
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		writeValidationError(w, errs, h.logger)
		return
	}

	customer, err := h.customers.Update(r.Context(), chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerResponse(customer), h.logger)
}

// Delete обслуживает DELETE /customers/{id}.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.customers.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListOrders обслуживает GET /customers/{id}/orders.
func (h *CustomerHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListByCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponses(orders), h.logger)
}
