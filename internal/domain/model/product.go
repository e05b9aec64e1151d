package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	SellerID string `gorm:"type:uuid;not null;index" json:"seller_id"`

	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"type:varchar(100);index" json:"category"`

	//単価と販売単位（kg, 袋 など）
	Price decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Unit  string          `gorm:"type:varchar(30)" json:"unit"`

	Stock       int64 `gorm:"not null" json:"stock"`
	IsAvailable bool  `gorm:"not null;default:true" json:"is_available"`

	//レビュー集計（review作成時に更新）
	Rating      float64 `gorm:"not null;default:0" json:"rating"`
	ReviewCount int64   `gorm:"not null;default:0" json:"review_count"`

	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
