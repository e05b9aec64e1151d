package model

import "time"

// 商品レビュー。
// 配達済み（delivered）の注文に対して1件だけ書ける。
type Review struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID string `gorm:"type:uuid;not null;index" json:"product_id"`
	BuyerID   string `gorm:"type:uuid;not null;index" json:"buyer_id"`
	OrderID   string `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
