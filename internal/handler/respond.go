package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/brakwaku/iCenCookiesLLC/internal/usecase"
)

// envelope is the {success, message} response shape used for errors and
// message-only mutations.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, envelope{Success: true, Message: message})
}

// respondError maps a domain error to its HTTP status and writes the
// failure envelope. Errors outside the taxonomy are upstream failures:
// logged in full, surfaced as a bare 500.
func respondError(w http.ResponseWriter, logger *zerolog.Logger, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, usecase.ErrUnauthorized),
		errors.Is(err, usecase.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, usecase.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, usecase.ErrProductNotFound),
		errors.Is(err, usecase.ErrReviewNotFound),
		errors.Is(err, usecase.ErrOrderNotFound),
		errors.Is(err, usecase.ErrPreferencesNotFound):
		status = http.StatusNotFound
	case errors.Is(err, usecase.ErrUserExists),
		errors.Is(err, usecase.ErrDuplicateReview),
		errors.Is(err, usecase.ErrDuplicatePreferences):
		status = http.StatusConflict
	case errors.Is(err, usecase.ErrInvalidResetToken):
		status = http.StatusBadRequest
	case errors.Is(err, usecase.ErrEmailSend):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Msg("request failed")
		respondJSON(w, status, envelope{Success: false, Message: "something went wrong"})
		return
	}

	respondJSON(w, status, envelope{Success: false, Message: err.Error()})
}

func respondBadRequest(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusBadRequest, envelope{Success: false, Message: message})
}
