package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文の明細。
// 単価は購入時点のスナップショット（後の値上げに追従しない）。
type OrderItem struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   string `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID string `gorm:"type:uuid;not null;index" json:"product_id"`

	ProductNameSnapshot string          `gorm:"type:varchar(255);not null" json:"product_name_snapshot"`
	UnitPriceSnapshot   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price_snapshot"`
	Quantity            int64           `gorm:"not null" json:"quantity"`
	TotalPrice          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_price"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
