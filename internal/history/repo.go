package history

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PurchaseRow is one purchase record joined with its catalog entry.
type PurchaseRow struct {
	HistoryID      int64
	ConfirmationID string
	Name           string
	Brand          string
	Color          string
	CostCents      int64
	Quantity       int
	CreatedAt      time.Time
}

// Repository is the read surface over committed purchases.
type Repository interface {
	ForUser(ctx context.Context, userID uuid.UUID) ([]PurchaseRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ForUser returns the user's purchase lines in insertion order, so rows
// sharing a confirmation id are adjacent.
func (r *repository) ForUser(ctx context.Context, userID uuid.UUID) ([]PurchaseRow, error) {
	rows := []PurchaseRow{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT pr.history_id,
		       pr.confirmation_id,
		       p.name,
		       p.brand,
		       p.color,
		       p.cost_cents,
		       pr.quantity,
		       pr.created_at
		FROM purchase_records pr
		JOIN products p ON p.id = pr.product_id
		WHERE pr.user_id = ?
		ORDER BY pr.history_id`, userID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
