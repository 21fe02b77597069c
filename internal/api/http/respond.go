package http

import (
	"encoding/json"
	"net/http"

	"sponsorship-backend/internal/errors"
	"sponsorship-backend/internal/logger"
)

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps typed domain errors onto HTTP statuses. Anything untyped is
// an internal error and its detail stays out of the response.
func writeError(w http.ResponseWriter, err error) {
	var domainErr *errors.Error
	if errors.As(err, &domainErr) {
		writeJSON(w, domainErr.HTTPStatus(), errorResponse{Code: domainErr.Code, Message: domainErr.Message})
		return
	}
	logger.Error("Unhandled error in request", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Code: errors.CodeInternal, Message: "internal error"})
}
