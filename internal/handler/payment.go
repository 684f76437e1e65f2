package handler

import (
	"net/http"

	"github.com/brakwaku/iCenCookiesLLC/internal/payment"
)

// handleCreatePaymentIntent creates a payment intent with the payment
// provider and hands the opaque client secret back to the client. The order
// lifecycle does not depend on it; a paid order is recorded separately via
// the order update's payment result.
func (s *Server) handleCreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req paymentIntentRequest
	if err := s.decode(r, &req); err != nil {
		respondBadRequest(w, "invalid input")
		return
	}

	user := UserFromContext(r.Context())

	clientSecret, err := s.payments.CreateIntent(payment.IntentParams{
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
		Email:       user.Email,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create payment intent")
		respondJSON(w, http.StatusBadGateway, envelope{Success: false, Message: "payment provider unavailable"})
		return
	}

	respondJSON(w, http.StatusCreated, paymentIntentResponse{Success: true, ClientSecret: clientSecret})
}
