package repository

import (
	"context"

	"github.com/LamineSayad1/agriconnect/internal/domain/model"
)

type ReviewRepository interface {
	Create(ctx context.Context, review model.Review) error
	ListByProductID(ctx context.Context, productID string) ([]model.Review, error)
	// 同じ注文に二重投稿させない
	ExistsByOrderID(ctx context.Context, orderID string) (bool, error)
}
