package repository

import (
	"context"
	"errors"

	"github.com/LamineSayad1/agriconnect/internal/domain/model"

	"gorm.io/gorm"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

func (r *ReviewGormRepository) Create(ctx context.Context, review model.Review) error {
	return r.db.WithContext(ctx).Create(&review).Error
}

func (r *ReviewGormRepository) ListByProductID(ctx context.Context, productID string) ([]model.Review, error) {
	var items []model.Review
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		return []model.Review{}, err
	}
	return items, nil
}

func (r *ReviewGormRepository) ExistsByOrderID(ctx context.Context, orderID string) (bool, error) {
	var rv model.Review
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&rv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
