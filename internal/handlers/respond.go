package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "paperbroker/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// writeError maps the error taxonomy onto HTTP statuses. Business-rule
// rejections get 422 so callers can distinguish them from malformed requests.
func writeError(w http.ResponseWriter, err error) {
	var validationErr *apperrors.ErrValidation
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": validationErr.Error()})
		return
	}

	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusInternalServerError
		switch domainErr.Code {
		case apperrors.CodeNotFound:
			status = http.StatusNotFound
		case apperrors.CodeInsufficientFunds, apperrors.CodeInsufficientHoldings:
			status = http.StatusUnprocessableEntity
		case apperrors.CodeValidation:
			status = http.StatusBadRequest
		}
		writeJSON(w, status, map[string]string{
			"error": domainErr.Message,
			"code":  string(domainErr.Code),
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}
