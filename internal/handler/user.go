package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brakwaku/iCenCookiesLLC/internal/repository"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.userUsecase.ListUsers(r.Context())
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, users)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.userUsecase.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := s.decode(r, &req); err != nil {
		respondBadRequest(w, "invalid input")
		return
	}

	user, err := s.userUsecase.UpdateUser(
		r.Context(),
		UserFromContext(r.Context()),
		chi.URLParam(r, "id"),
		repository.UpdateUserParams{
			Name:    req.Name,
			Email:   req.Email,
			Address: req.Address,
			Role:    req.Role,
		},
	)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.userUsecase.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, s.logger, err)
		return
	}

	respondMessage(w, http.StatusOK, "user deleted successfully")
}
