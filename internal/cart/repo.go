package cart

import (
	"context"

	"github.com/cmbeauty/storefront-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the storage surface for cart management.
type Repository interface {
	AddLine(ctx context.Context, userID, productID uuid.UUID, qty int) error
	SetQuantity(ctx context.Context, userID, productID uuid.UUID, qty int) (bool, error)
	RemoveLine(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	Lines(ctx context.Context, userID uuid.UUID) ([]Line, error)
	ProductExists(ctx context.Context, productID uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// AddLine inserts a cart line, folding a duplicate (user, product) pair into
// a quantity increment so repeat adds never error.
func (r *repository) AddLine(ctx context.Context, userID, productID uuid.UUID, qty int) error {
	line := models.CartLine{
		UserID:    userID,
		ProductID: productID,
		Quantity:  qty,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity": gorm.Expr("cart_lines.quantity + excluded.quantity"),
			}),
		}).
		Create(&line).Error
}

func (r *repository) SetQuantity(ctx context.Context, userID, productID uuid.UUID, qty int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.CartLine{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		UpdateColumn("quantity", qty)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) RemoveLine(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartLine{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Lines returns the cart joined with catalog and stock data for display.
func (r *repository) Lines(ctx context.Context, userID uuid.UUID) ([]Line, error) {
	lines := []Line{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id AS product_id,
		       p.name,
		       p.brand,
		       p.color,
		       p.img_path,
		       p.cost_cents,
		       c.quantity,
		       s.stock
		FROM cart_lines c
		JOIN products p ON p.id = c.product_id
		JOIN stock_records s ON s.product_id = c.product_id
		WHERE c.user_id = ?
		ORDER BY c.created_at, p.name`, userID).
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *repository) ProductExists(ctx context.Context, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
