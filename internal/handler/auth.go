package handler

import (
	"net/http"
	"time"

	"github.com/brakwaku/iCenCookiesLLC/internal/usecase"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := s.decode(r, &req); err != nil {
		respondBadRequest(w, "invalid input")
		return
	}

	user, token, err := s.authUsecase.Register(r.Context(), usecase.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
	})
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	s.setSessionCookie(w, token)
	respondJSON(w, http.StatusCreated, sessionResponse{Success: true, Token: token, User: user})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := s.decode(r, &req); err != nil {
		respondBadRequest(w, "invalid input")
		return
	}

	user, token, err := s.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	s.setSessionCookie(w, token)
	respondJSON(w, http.StatusOK, sessionResponse{Success: true, Token: token, User: user})
}

func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	// Overwrite the session cookie with a short-lived dummy value.
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    "none",
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Second),
		HttpOnly: true,
		Secure:   s.cookieSecure,
	})

	respondMessage(w, http.StatusOK, "logout successful")
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, UserFromContext(r.Context()))
}

func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req updatePasswordRequest
	if err := s.decode(r, &req); err != nil {
		respondBadRequest(w, "invalid input")
		return
	}

	user := UserFromContext(r.Context())
	if err := s.authUsecase.UpdatePassword(r.Context(), user.ID.Hex(), req.CurrentPassword, req.NewPassword); err != nil {
		respondError(w, s.logger, err)
		return
	}

	respondMessage(w, http.StatusOK, "password updated")
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := s.decode(r, &req); err != nil {
		respondBadRequest(w, "invalid input")
		return
	}

	if err := s.authUsecase.RequestPasswordReset(r.Context(), req.Email); err != nil {
		respondError(w, s.logger, err)
		return
	}

	respondMessage(w, http.StatusOK, "password reset email sent")
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := s.decode(r, &req); err != nil {
		respondBadRequest(w, "invalid input")
		return
	}

	if err := s.authUsecase.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		respondError(w, s.logger, err)
		return
	}

	respondMessage(w, http.StatusOK, "password reset successful")
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(s.sessionTTL),
		HttpOnly: true,
		Secure:   s.cookieSecure,
	})
}
