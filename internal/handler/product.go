package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/brakwaku/iCenCookiesLLC/internal/loader"
	"github.com/brakwaku/iCenCookiesLLC/internal/repository"
	"github.com/brakwaku/iCenCookiesLLC/internal/usecase"
)

// handleListProducts returns all products with their reviews attached. Both
// the products and the per-product review sets go through the request's
// loaders, so however many products there are, the store sees one product
// query and at most two review-side queries.
func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	ids, err := s.productUsecase.ListProductIDs(r.Context())
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	loaders := loader.FromContext(r.Context())

	products, err := loaders.Products.LoadMany(r.Context(), ids)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	reviews, err := loaders.Reviews.LoadMany(r.Context(), ids)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	out := make([]productResponse, 0, len(products))
	for i, p := range products {
		if p == nil {
			continue
		}
		out = append(out, productResponse{Product: p, ProductReviews: reviews[i]})
	}

	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, s.logger, usecase.ErrProductNotFound)
		return
	}

	loaders := loader.FromContext(r.Context())

	product, err := loaders.Products.Load(r.Context(), id)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	if product == nil {
		respondError(w, s.logger, usecase.ErrProductNotFound)
		return
	}

	reviews, err := loaders.Reviews.Load(r.Context(), id)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, productResponse{Product: product, ProductReviews: reviews})
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := s.decode(r, &req); err != nil {
		respondBadRequest(w, "invalid input")
		return
	}

	product, err := s.productUsecase.CreateProduct(r.Context(), UserFromContext(r.Context()), usecase.CreateProductParams{
		Name:         req.Name,
		ImageURL:     req.ImageURL,
		CloudinaryID: req.CloudinaryID,
		Type:         req.Type,
		Category:     req.Category,
		Description:  req.Description,
		Price:        req.Price,
		CountInStock: req.CountInStock,
	})
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, product)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req updateProductRequest
	if err := s.decode(r, &req); err != nil {
		respondBadRequest(w, "invalid input")
		return
	}

	product, err := s.productUsecase.UpdateProduct(r.Context(), chi.URLParam(r, "id"), repository.UpdateProductParams{
		Name:         req.Name,
		ImageURL:     req.ImageURL,
		CloudinaryID: req.CloudinaryID,
		Type:         req.Type,
		Category:     req.Category,
		Description:  req.Description,
		Price:        req.Price,
		CountInStock: req.CountInStock,
	})
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.productUsecase.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, s.logger, err)
		return
	}

	respondMessage(w, http.StatusOK, "product deleted successfully")
}
