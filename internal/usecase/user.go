package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/brakwaku/iCenCookiesLLC/internal/model"
	"github.com/brakwaku/iCenCookiesLLC/internal/repository"
)

// UserUsecase defines the user-account use cases. Role gating for the
// admin-only operations happens at the route guard; ownership checks happen
// here because they need the target entity.
type UserUsecase interface {
	ListUsers(ctx context.Context) ([]*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	UpdateUser(ctx context.Context, actor *model.User, id string, params repository.UpdateUserParams) (*model.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type userUsecase struct {
	userRepo repository.UserRepository
}

// NewUserUsecase creates a new UserUsecase.
func NewUserUsecase(userRepo repository.UserRepository) UserUsecase {
	return &userUsecase{userRepo: userRepo}
}

func (u *userUsecase) ListUsers(ctx context.Context) ([]*model.User, error) {
	return u.userRepo.ListUsers(ctx)
}

func (u *userUsecase) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := u.userRepo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return user, nil
}

// UpdateUser lets a user update their own account; admins may update anyone.
func (u *userUsecase) UpdateUser(
	ctx context.Context,
	actor *model.User,
	id string,
	params repository.UpdateUserParams,
) (*model.User, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}
	if actor.ID.Hex() != id && !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	// Only admins may change roles.
	if params.Role != nil && !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	user, err := u.userRepo.UpdateUser(ctx, id, params)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUserExists
		}

		return nil, err
	}

	return user, nil
}

func (u *userUsecase) DeleteUser(ctx context.Context, id string) error {
	if _, err := u.userRepo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}

		return err
	}

	return nil
}
