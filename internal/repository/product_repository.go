package repository

import (
	"context"
	"errors"

	"github.com/LamineSayad1/agriconnect/internal/domain/model"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("not found")

// 一覧検索
type ProductListQuery struct {
	Page     int
	Limit    int
	Q        string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal

	//販売者ロールで絞る（supply-market は supplier のみ）
	SellerType model.UserType

	Sort string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	ListPublic(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	ListBySellerID(ctx context.Context, sellerID string) ([]model.Product, error)
	FindByID(ctx context.Context, id string) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id string) error

	//レビュー集計の反映
	UpdateRating(ctx context.Context, id string, rating float64, reviewCount int64) error
}
