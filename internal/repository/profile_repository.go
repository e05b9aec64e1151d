package repository

import (
	"context"

	"github.com/LamineSayad1/agriconnect/internal/domain/model"
)

type ProfileRepository interface {
	FindByID(ctx context.Context, id string) (model.Profile, error)
	FindByEmail(ctx context.Context, email string) (model.Profile, error)
	Create(ctx context.Context, p model.Profile) error
	Update(ctx context.Context, p model.Profile) error
}
