package model

import "time"

type UserType string

const (
	UserTypeFarmer   UserType = "farmer"
	UserTypeBuyer    UserType = "buyer"
	UserTypeSupplier UserType = "supplier"
)

// 出品できるロールか（farmer / supplier）
func (t UserType) IsSeller() bool {
	return t == UserTypeFarmer || t == UserTypeSupplier
}

// ログインユーザーのプロフィール。
// farmer / supplier は販売者、buyer は購入者。
type Profile struct {
	ID           string   `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"column:password_hash;not null" json:"-"`
	FullName     string   `gorm:"type:varchar(255);not null" json:"full_name"`
	UserType     UserType `gorm:"type:varchar(20);not null;index" json:"user_type"`

	//農場やショップの紹介（farmer/supplierのみ使う）
	FarmName        string `gorm:"type:varchar(255)" json:"farm_name,omitempty"`
	FarmDescription string `gorm:"type:text" json:"farm_description,omitempty"`
	FarmLocation    string `gorm:"type:varchar(255)" json:"farm_location,omitempty"`

	Phone     string `gorm:"type:varchar(30)" json:"phone,omitempty"`
	AvatarURL string `gorm:"type:varchar(500)" json:"avatar_url,omitempty"`

	//配送先（自由記述）
	ShippingAddress string `gorm:"type:text" json:"shipping_address,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
