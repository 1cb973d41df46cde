package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a shopper account. Fund is the store-credit balance in
// cents; a purchase never leaves it negative.
type User struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Username        string    `gorm:"column:username;type:text;not null;uniqueIndex"`
	Email           string    `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash    string    `gorm:"column:password_hash;not null"`
	Phone           string    `gorm:"column:phone;type:text;not null;uniqueIndex"`
	CardNumber      string    `gorm:"column:card_number;not null"`
	FundCents       int64     `gorm:"column:fund_cents;not null;default:0"`
	ShippingAddress string    `gorm:"column:shipping_address;not null"`
	ImgPath         *string   `gorm:"column:img_path"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
