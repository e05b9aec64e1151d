package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// 正規のステータス遷移。
// pending -> shipped -> delivered、pending -> cancelled のみ。
// delivered / cancelled は終端。
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusShipped || next == OrderStatusCancelled
	case OrderStatusShipped:
		return next == OrderStatusDelivered
	default:
		return false
	}
}

func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return OrderStatus(s), true
	default:
		return "", false
	}
}

// 1つの販売者グループ＝1つの注文。
// buyerが作成し、ステータスは相手側の販売者だけが進める。
type Order struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	BuyerID  string `gorm:"type:uuid;not null;index;uniqueIndex:idx_orders_idem" json:"buyer_id"`
	SellerID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_orders_idem" json:"seller_id"`

	Status      OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`

	//同じキーの再送は同じ注文を返す（buyer+seller+keyで一意）
	IdempotencyKey string `gorm:"type:varchar(255);not null;uniqueIndex:idx_orders_idem" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
