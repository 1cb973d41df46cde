package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is one catalog entry. Pricing is stored in cents.
type Product struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Brand       string    `gorm:"column:brand;not null"`
	Color       string    `gorm:"column:color;not null;default:''"`
	Category    string    `gorm:"column:category;not null;index"`
	ProductType string    `gorm:"column:product_type;not null;default:''"`
	CostCents   int64     `gorm:"column:cost_cents;not null"`
	Description string    `gorm:"column:description;not null;default:''"`
	ImgPath     string    `gorm:"column:img_path;not null;default:''"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
