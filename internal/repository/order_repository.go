package repository

import (
	"context"

	"github.com/LamineSayad1/agriconnect/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID string) (model.Order, error)
	ListByBuyerID(ctx context.Context, buyerID string, page int, limit int) ([]model.Order, int64, error)
	ListBySellerID(ctx context.Context, sellerID string, page int, limit int) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) error
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error

	//検索（同じキーなら同じ結果を返す）
	FindByIdempotencyKey(ctx context.Context, buyerID string, sellerID string, key string) (model.Order, bool, error)
}
