package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// errorResponse — тело ответа для 404 и 500.
type errorResponse struct {
	Message string `json:"message"`
}

// validationResponse — тело ответа 400 со списком ошибок по полям.
type validationResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, logger *log.Entry) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.WithError(err).Error("failed to encode json response")
	}
}

func writeError(w http.ResponseWriter, status int, message string, logger *log.Entry) {
	writeJSON(w, status, errorResponse{Message: message}, logger)
}

func writeValidationError(w http.ResponseWriter, fieldErrors []string, logger *log.Entry) {
	writeJSON(w, http.StatusBadRequest, validationResponse{
		Message: "Validation failed",
		Errors:  fieldErrors,
	}, logger)
}

// writeDomainError транслирует ошибку сервисного слоя в HTTP-ответ:
// sentinel-ошибки NotFound дают 404, всё прочее — 500 с общим сообщением.
func writeDomainError(w http.ResponseWriter, err error, logger *log.Entry) {
	switch {
	case errors.Is(err, domain.ErrCustomerNotFound):
		writeError(w, http.StatusNotFound, "Customer not found", logger)
	case errors.Is(err, domain.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, "Order not found", logger)
	case errors.Is(err, domain.ErrOrderItemNotFound):
		writeError(w, http.StatusNotFound, "Order item not found", logger)
	default:
		logger.WithError(err).Error("request failed")
		writeError(w, http.StatusInternalServerError, "Internal server error", logger)
	}
}
