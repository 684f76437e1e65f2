package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brakwaku/iCenCookiesLLC/internal/repository"
	"github.com/brakwaku/iCenCookiesLLC/internal/usecase"
)

func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.reviewUsecase.ListReviews(r.Context())
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, reviews)
}

func (s *Server) handleGetReview(w http.ResponseWriter, r *http.Request) {
	review, err := s.reviewUsecase.GetReview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, review)
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if err := s.decode(r, &req); err != nil {
		respondBadRequest(w, "invalid input")
		return
	}

	review, err := s.reviewUsecase.CreateReview(r.Context(), UserFromContext(r.Context()), usecase.CreateReviewParams{
		ProductID: req.ProductID,
		Title:     req.Title,
		Comment:   req.Comment,
		Rating:    req.Rating,
	})
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, review)
}

func (s *Server) handleUpdateReview(w http.ResponseWriter, r *http.Request) {
	var req updateReviewRequest
	if err := s.decode(r, &req); err != nil {
		respondBadRequest(w, "invalid input")
		return
	}

	review, err := s.reviewUsecase.UpdateReview(
		r.Context(),
		UserFromContext(r.Context()),
		chi.URLParam(r, "id"),
		repository.UpdateReviewParams{
			Title:   req.Title,
			Comment: req.Comment,
			Rating:  req.Rating,
		},
	)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, review)
}

func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := s.reviewUsecase.DeleteReview(r.Context(), UserFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondError(w, s.logger, err)
		return
	}

	respondMessage(w, http.StatusOK, "review deleted successfully")
}
