package models

import (
	"time"

	"github.com/google/uuid"
)

// StockRecord tracks the sellable stock per product. Stock never goes
// negative: the only writer is the checkout applier's guarded decrement.
type StockRecord struct {
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey"`
	Stock     int       `gorm:"column:stock;not null;default:0"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
