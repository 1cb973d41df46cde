package models

import (
	"time"

	"github.com/google/uuid"
)

// PurchaseRecord is one purchased line item. Records sharing a confirmation id
// form one checkout; there is no separate order header. HistoryID preserves
// insertion order for history display.
type PurchaseRecord struct {
	HistoryID      int64     `gorm:"column:history_id;primaryKey;autoIncrement"`
	ConfirmationID string    `gorm:"column:confirmation_id;not null;index;uniqueIndex:idx_purchase_confirmation_product"`
	UserID         uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	ProductID      uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_purchase_confirmation_product"`
	Quantity       int       `gorm:"column:quantity;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}
