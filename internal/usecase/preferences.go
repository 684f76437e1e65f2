package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/brakwaku/iCenCookiesLLC/internal/model"
	"github.com/brakwaku/iCenCookiesLLC/internal/repository"
)

// PreferencesUsecase defines the delivery-preferences use cases. Each user
// owns at most one preferences record and only the owner may touch it.
type PreferencesUsecase interface {
	CreatePreferences(ctx context.Context, actor *model.User, params CreatePreferencesParams) (*model.Preferences, error)
	GetPreferences(ctx context.Context, actor *model.User) (*model.Preferences, error)
	UpdatePreferences(ctx context.Context, actor *model.User, params repository.UpdatePreferencesParams) (*model.Preferences, error)
	DeletePreferences(ctx context.Context, actor *model.User) error
}

// CreatePreferencesParams defines the parameters for creating a preferences
// record.
type CreatePreferencesParams struct {
	MonthlyDelivery bool
	DoNotAdd        []string
	Order           *bson.ObjectID
}

type preferencesUsecase struct {
	prefsRepo repository.PreferencesRepository
}

// NewPreferencesUsecase creates a new PreferencesUsecase.
func NewPreferencesUsecase(prefsRepo repository.PreferencesRepository) PreferencesUsecase {
	return &preferencesUsecase{prefsRepo: prefsRepo}
}

func (u *preferencesUsecase) CreatePreferences(
	ctx context.Context,
	actor *model.User,
	params CreatePreferencesParams,
) (*model.Preferences, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}

	prefs, err := u.prefsRepo.CreatePreferences(ctx, &model.Preferences{
		User:            actor.ID,
		MonthlyDelivery: params.MonthlyDelivery,
		DoNotAdd:        params.DoNotAdd,
		Order:           params.Order,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicatePreferences
		}

		return nil, err
	}

	return prefs, nil
}

func (u *preferencesUsecase) GetPreferences(ctx context.Context, actor *model.User) (*model.Preferences, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}

	prefs, err := u.prefsRepo.GetPreferencesByUser(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPreferencesNotFound
		}

		return nil, err
	}

	return prefs, nil
}

func (u *preferencesUsecase) UpdatePreferences(
	ctx context.Context,
	actor *model.User,
	params repository.UpdatePreferencesParams,
) (*model.Preferences, error) {
	existing, err := u.GetPreferences(ctx, actor)
	if err != nil {
		return nil, err
	}

	prefs, err := u.prefsRepo.UpdatePreferences(ctx, existing.ID.Hex(), params)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPreferencesNotFound
		}

		return nil, err
	}

	return prefs, nil
}

func (u *preferencesUsecase) DeletePreferences(ctx context.Context, actor *model.User) error {
	existing, err := u.GetPreferences(ctx, actor)
	if err != nil {
		return err
	}

	if _, err := u.prefsRepo.DeletePreferences(ctx, existing.ID.Hex()); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrPreferencesNotFound
		}

		return err
	}

	return nil
}
