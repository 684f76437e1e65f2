package handler

import (
	"net/http"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/brakwaku/iCenCookiesLLC/internal/repository"
	"github.com/brakwaku/iCenCookiesLLC/internal/usecase"
)

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.prefsUsecase.GetPreferences(r.Context(), UserFromContext(r.Context()))
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, prefs)
}

func (s *Server) handleCreatePreferences(w http.ResponseWriter, r *http.Request) {
	var req createPreferencesRequest
	if err := s.decode(r, &req); err != nil {
		respondBadRequest(w, "invalid input")
		return
	}

	params := usecase.CreatePreferencesParams{
		MonthlyDelivery: req.MonthlyDelivery,
		DoNotAdd:        req.DoNotAdd,
	}
	if req.Order != nil {
		orderID, err := bson.ObjectIDFromHex(*req.Order)
		if err != nil {
			respondBadRequest(w, "invalid order id")
			return
		}
		params.Order = &orderID
	}

	prefs, err := s.prefsUsecase.CreatePreferences(r.Context(), UserFromContext(r.Context()), params)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, prefs)
}

func (s *Server) handleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req updatePreferencesRequest
	if err := s.decode(r, &req); err != nil {
		respondBadRequest(w, "invalid input")
		return
	}

	params := repository.UpdatePreferencesParams{
		MonthlyDelivery: req.MonthlyDelivery,
		DoNotAdd:        req.DoNotAdd,
	}
	if req.Order != nil {
		orderID, err := bson.ObjectIDFromHex(*req.Order)
		if err != nil {
			respondBadRequest(w, "invalid order id")
			return
		}
		params.Order = &orderID
	}

	prefs, err := s.prefsUsecase.UpdatePreferences(r.Context(), UserFromContext(r.Context()), params)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, prefs)
}

func (s *Server) handleDeletePreferences(w http.ResponseWriter, r *http.Request) {
	if err := s.prefsUsecase.DeletePreferences(r.Context(), UserFromContext(r.Context())); err != nil {
		respondError(w, s.logger, err)
		return
	}

	respondMessage(w, http.StatusOK, "preferences deleted successfully")
}
