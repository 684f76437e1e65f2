package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/brakwaku/iCenCookiesLLC/internal/auth"
	"github.com/brakwaku/iCenCookiesLLC/internal/config"
	"github.com/brakwaku/iCenCookiesLLC/internal/model"
	"github.com/brakwaku/iCenCookiesLLC/internal/payment"
	"github.com/brakwaku/iCenCookiesLLC/internal/repository"
	"github.com/brakwaku/iCenCookiesLLC/internal/usecase"
)

// Server holds the HTTP surface of the API: routing, authentication
// middleware, request validation, and the handlers composing the usecases.
type Server struct {
	logger   *zerolog.Logger
	validate *validator.Validate

	codec        auth.Codec
	cookieName   string
	cookieSecure bool
	sessionTTL   time.Duration

	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	reviewRepo  repository.ReviewRepository

	authUsecase    usecase.AuthUsecase
	userUsecase    usecase.UserUsecase
	productUsecase usecase.ProductUsecase
	reviewUsecase  usecase.ReviewUsecase
	orderUsecase   usecase.OrderUsecase
	prefsUsecase   usecase.PreferencesUsecase

	payments *payment.Client
}

// NewServer wires the handlers.
func NewServer(
	cfg *config.Config,
	logger *zerolog.Logger,
	codec auth.Codec,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	reviewRepo repository.ReviewRepository,
	authUsecase usecase.AuthUsecase,
	userUsecase usecase.UserUsecase,
	productUsecase usecase.ProductUsecase,
	reviewUsecase usecase.ReviewUsecase,
	orderUsecase usecase.OrderUsecase,
	prefsUsecase usecase.PreferencesUsecase,
	payments *payment.Client,
) *Server {
	return &Server{
		logger:         logger,
		validate:       validator.New(),
		codec:          codec,
		cookieName:     cfg.CookieName,
		cookieSecure:   cfg.CookieSecure,
		sessionTTL:     cfg.JWTExpiresIn,
		userRepo:       userRepo,
		productRepo:    productRepo,
		reviewRepo:     reviewRepo,
		authUsecase:    authUsecase,
		userUsecase:    userUsecase,
		productUsecase: productUsecase,
		reviewUsecase:  reviewUsecase,
		orderUsecase:   orderUsecase,
		prefsUsecase:   prefsUsecase,
		payments:       payments,
	}
}

// Router builds the route tree. Capability requirements are declared here
// per route, checked centrally by the guards before any handler runs.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(RequestLogger(s.logger))
	r.Use(s.Authenticate)
	r.Use(s.Loaders)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
			r.Post("/logout", s.handleLogout)
			r.Post("/forgot-password", s.handleForgotPassword)
			r.Put("/reset-password", s.handleResetPassword)

			r.Group(func(r chi.Router) {
				r.Use(RequireAuth)
				r.Get("/me", s.handleMe)
				r.Put("/password", s.handleUpdatePassword)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.With(RequireRole(model.RoleAdmin)).Get("/", s.handleListUsers)
			r.Get("/{id}", s.handleGetUser)
			r.With(RequireAuth).Put("/{id}", s.handleUpdateUser)
			r.With(RequireRole(model.RoleAdmin)).Delete("/{id}", s.handleDeleteUser)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", s.handleListProducts)
			r.Get("/{id}", s.handleGetProduct)
			r.With(RequireRole(model.RoleAdmin)).Post("/", s.handleCreateProduct)
			r.With(RequireRole(model.RoleAdmin)).Put("/{id}", s.handleUpdateProduct)
			r.With(RequireRole(model.RoleAdmin)).Delete("/{id}", s.handleDeleteProduct)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", s.handleListReviews)
			r.Get("/{id}", s.handleGetReview)
			r.With(RequireAuth).Post("/", s.handleCreateReview)
			r.With(RequireAuth).Put("/{id}", s.handleUpdateReview)
			r.With(RequireAuth).Delete("/{id}", s.handleDeleteReview)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(RequireAuth)
			r.Get("/", s.handleListOrders)
			r.Post("/", s.handleCreateOrder)
			r.Get("/{id}", s.handleGetOrder)
			r.Put("/{id}", s.handleUpdateOrder)
			r.Delete("/{id}", s.handleDeleteOrder)
		})

		r.Route("/preferences", func(r chi.Router) {
			r.Use(RequireAuth)
			r.Get("/", s.handleGetPreferences)
			r.Post("/", s.handleCreatePreferences)
			r.Put("/", s.handleUpdatePreferences)
			r.Delete("/", s.handleDeletePreferences)
		})

		r.With(RequireAuth).Post("/payments/intent", s.handleCreatePaymentIntent)
	})

	return r
}

// decode parses and validates a JSON request body.
func (s *Server) decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}

	return s.validate.Struct(v)
}
