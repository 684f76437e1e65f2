package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/brakwaku/iCenCookiesLLC/internal/auth"
	"github.com/brakwaku/iCenCookiesLLC/internal/model"
	"github.com/brakwaku/iCenCookiesLLC/internal/repository"
)

// AuthUsecase defines the authentication-related use cases: account
// registration and login, session token issuance, and the password reset
// flow.
type AuthUsecase interface {
	Register(ctx context.Context, params RegisterParams) (*model.User, string, error)
	Login(ctx context.Context, params LoginParams) (*model.User, string, error)
	UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, bareToken, newPassword string) error
}

// RegisterParams defines the parameters for user registration.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
	Address  model.Address
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

// EmailSender is the single outbound-email capability the auth flow needs.
type EmailSender interface {
	Send(to, subject, body string) error
}

type authUsecase struct {
	userRepo      repository.UserRepository
	codec         auth.Codec
	mail          EmailSender
	resetTokenTTL time.Duration
	resetURL      string
	logger        *zerolog.Logger
}

// NewAuthUsecase creates a new AuthUsecase.
func NewAuthUsecase(
	userRepo repository.UserRepository,
	codec auth.Codec,
	mail EmailSender,
	resetTokenTTL time.Duration,
	resetURL string,
	logger *zerolog.Logger,
) AuthUsecase {
	return &authUsecase{
		userRepo:      userRepo,
		codec:         codec,
		mail:          mail,
		resetTokenTTL: resetTokenTTL,
		resetURL:      resetURL,
		logger:        logger,
	}
}

func (u *authUsecase) Register(ctx context.Context, params RegisterParams) (*model.User, string, error) {
	passwordHash, err := auth.HashPassword(params.Password)
	if err != nil {
		return nil, "", err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Name:         params.Name,
		Email:        params.Email,
		Role:         model.RoleCustomer,
		Address:      params.Address,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, "", ErrUserExists
		}

		return nil, "", err
	}

	token, err := u.codec.Issue(user.ID.Hex())
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*model.User, string, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", ErrInvalidCredentials
		}

		return nil, "", err
	}

	if ok, err := auth.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return nil, "", err
	} else if !ok {
		return nil, "", ErrInvalidCredentials
	}

	token, err := u.codec.Issue(user.ID.Hex())
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (u *authUsecase) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}

		return err
	}

	if ok, err := auth.VerifyPassword(currentPassword, user.PasswordHash); err != nil {
		return err
	} else if !ok {
		return ErrInvalidCredentials
	}

	passwordHash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	_, err = u.userRepo.UpdateUser(ctx, userID, repository.UpdateUserParams{
		PasswordHash: &passwordHash,
	})
	return err
}

// RequestPasswordReset stores a hashed single-use token against the user and
// mails the bare token. If the mail cannot be sent the stored token pair is
// rolled back before the error is surfaced, so no unreachable token is left
// behind.
func (u *authUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}

		return err
	}

	bare, hashed, err := auth.NewResetToken()
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(u.resetTokenTTL)
	if err := u.userRepo.SetResetToken(ctx, user.ID.Hex(), hashed, expiresAt); err != nil {
		return err
	}

	body := fmt.Sprintf(
		"You are receiving this email because a password reset was requested for your account.\n\n"+
			"Reset your password here: %s?token=%s\n\n"+
			"The link expires in %s. If you did not request a reset, you can ignore this email.",
		u.resetURL, bare, u.resetTokenTTL,
	)

	if err := u.mail.Send(user.Email, "Password reset token", body); err != nil {
		u.logger.Error().Err(err).Str("email", user.Email).Msg("failed to send password reset email")

		if clearErr := u.userRepo.ClearResetToken(ctx, user.ID.Hex()); clearErr != nil {
			u.logger.Error().Err(clearErr).Msg("failed to roll back reset token")
		}

		return ErrEmailSend
	}

	return nil
}

// ResetPassword consumes a bare reset token: the presented token is hashed
// and compared against the stored hash, and on success the new password is
// set and the token/expiry pair cleared in one atomic update.
func (u *authUsecase) ResetPassword(ctx context.Context, bareToken, newPassword string) error {
	hashed := auth.HashResetToken(bareToken)

	user, err := u.userRepo.GetUserByResetToken(ctx, hashed, time.Now())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrInvalidResetToken
		}

		return err
	}

	passwordHash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return u.userRepo.ConsumeResetToken(ctx, user.ID.Hex(), passwordHash)
}
