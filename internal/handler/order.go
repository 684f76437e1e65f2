package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/brakwaku/iCenCookiesLLC/internal/model"
	"github.com/brakwaku/iCenCookiesLLC/internal/repository"
	"github.com/brakwaku/iCenCookiesLLC/internal/usecase"
)

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.orderUsecase.ListOrders(r.Context(), UserFromContext(r.Context()))
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.orderUsecase.GetOrder(r.Context(), UserFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := s.decode(r, &req); err != nil {
		respondBadRequest(w, "invalid input")
		return
	}

	items := make([]model.OrderItem, 0, len(req.OrderItems))
	for _, item := range req.OrderItems {
		productID, err := bson.ObjectIDFromHex(item.Product)
		if err != nil {
			respondBadRequest(w, "invalid product id in order items")
			return
		}
		items = append(items, model.OrderItem{
			Product:  productID,
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
			ImageURL: item.ImageURL,
		})
	}

	order, err := s.orderUsecase.CreateOrder(r.Context(), UserFromContext(r.Context()), usecase.CreateOrderParams{
		OrderItems:      items,
		ShippingAddress: req.ShippingAddress,
		TotalPrice:      req.TotalPrice,
	})
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

func (s *Server) handleUpdateOrder(w http.ResponseWriter, r *http.Request) {
	var req updateOrderRequest
	if err := s.decode(r, &req); err != nil {
		respondBadRequest(w, "invalid input")
		return
	}

	params := repository.UpdateOrderParams{
		ShippingAddress: req.ShippingAddress,
		PaymentResult:   req.PaymentResult,
		IsPaid:          req.IsPaid,
		IsDelivered:     req.IsDelivered,
	}

	now := time.Now()
	if req.IsPaid != nil && *req.IsPaid {
		params.PaidAt = &now
	}
	if req.IsDelivered != nil && *req.IsDelivered {
		params.DeliveredAt = &now
	}

	order, err := s.orderUsecase.UpdateOrder(r.Context(), UserFromContext(r.Context()), chi.URLParam(r, "id"), params)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func (s *Server) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := s.orderUsecase.DeleteOrder(r.Context(), UserFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondError(w, s.logger, err)
		return
	}

	respondMessage(w, http.StatusOK, "order deleted successfully")
}
