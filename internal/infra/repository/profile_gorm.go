package repository

import (
	"context"
	"errors"

	"github.com/LamineSayad1/agriconnect/internal/domain/model"
	repo "github.com/LamineSayad1/agriconnect/internal/repository"

	"gorm.io/gorm"
)

type ProfileGormRepository struct {
	db *gorm.DB
}

func NewProfileGormRepository(db *gorm.DB) *ProfileGormRepository {
	return &ProfileGormRepository{db: db}
}

func (r *ProfileGormRepository) FindByID(ctx context.Context, id string) (model.Profile, error) {
	var p model.Profile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Profile{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Profile{}, err
	}
	return p, nil
}

func (r *ProfileGormRepository) FindByEmail(ctx context.Context, email string) (model.Profile, error) {
	var p model.Profile
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Profile{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Profile{}, err
	}
	return p, nil
}

func (r *ProfileGormRepository) Create(ctx context.Context, p model.Profile) error {
	return r.db.WithContext(ctx).Create(&p).Error
}

func (r *ProfileGormRepository) Update(ctx context.Context, p model.Profile) error {
	res := r.db.WithContext(ctx).Model(&model.Profile{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"full_name":        p.FullName,
			"farm_name":        p.FarmName,
			"farm_description": p.FarmDescription,
			"farm_location":    p.FarmLocation,
			"phone":            p.Phone,
			"avatar_url":       p.AvatarURL,
			"shipping_address": p.ShippingAddress,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
