package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"library-loan-backend/internal/domain"
	"library-loan-backend/internal/logger"
	"library-loan-backend/internal/security"
	"library-loan-backend/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeDomainError maps the expected operation outcomes onto HTTP statuses.
// Anything unrecognized is a storage failure and surfaces as a 500 with a
// generic message; the detail only goes to the log.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrNoCopiesAvailable):
		writeError(w, http.StatusBadRequest, "no copies of this book are available")
	case errors.Is(err, domain.ErrDuplicatePendingRequest):
		writeError(w, http.StatusBadRequest, "you already have a pending request for this book")
	case errors.Is(err, domain.ErrInvalidState):
		writeError(w, http.StatusBadRequest, "only pending requests can be approved or rejected")
	case errors.Is(err, domain.ErrAlreadyReturned):
		writeError(w, http.StatusBadRequest, "already returned")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "not allowed")
	case errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, "email is already registered")
	case errors.Is(err, service.ErrAccountDisabled):
		writeError(w, http.StatusForbidden, "account is deactivated")
	case errors.Is(err, security.ErrExpiredToken),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrWrongTokenType):
		writeError(w, http.StatusUnauthorized, "invalid or expired token")
	default:
		logger.Error("Unexpected error handling request", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
