package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/domain/entity"
	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/infrastructure/logger"
)

// writeError maps the error taxonomy onto HTTP statuses: NotFound to 404,
// business-rule violations to 400, field-shape violation lists to 409 and
// everything else to a generic 500 that leaks no internal detail.
func writeError(w http.ResponseWriter, log logger.Logger, requestID string, err error) {
	var notFound *entity.NotFoundError
	var badRequest *entity.BadRequestError
	var validation *entity.ValidationError

	switch {
	case errors.As(err, &notFound):
		sendError(w, http.StatusNotFound, notFound.Message, requestID)
	case errors.As(err, &badRequest):
		sendError(w, http.StatusBadRequest, badRequest.Message, requestID)
	case errors.As(err, &validation):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(ViolationsResponse{
			Violations: validation.Violations,
			RequestID:  requestID,
		})
	default:
		log.Error("Unexpected error while handling request", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendError(w, http.StatusInternalServerError, "internal server error", requestID)
	}
}

func sendError(w http.ResponseWriter, status int, message, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:     message,
		Status:    status,
		RequestID: requestID,
	})
}

func sendJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
