package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"cart-api/internal/repository"
	"cart-api/internal/service"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	respondJSON(w, status, ErrorResponse{
		Success: false,
		Message: message,
		Error:   err.Error(),
	})
}

// handleServiceError maps domain errors to HTTP status codes; anything
// unrecognized is a storage failure.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrCartNotFound):
		respondError(w, http.StatusNotFound, "cart not found", err)
	case errors.Is(err, repository.ErrItemNotFound):
		respondError(w, http.StatusNotFound, "item not found in cart", err)
	case errors.Is(err, repository.ErrEmailTaken):
		respondError(w, http.StatusBadRequest, "email already registered", err)
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid email or password", err)
	default:
		respondError(w, http.StatusInternalServerError, "storage failure", err)
	}
}
