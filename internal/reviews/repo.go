package reviews

import (
	"context"
	"time"

	"github.com/cmbeauty/storefront-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is one product review joined with the reviewer's username.
type Review struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository is the storage surface for product reviews.
type Repository interface {
	ForProduct(ctx context.Context, productID uuid.UUID) ([]Review, error)
	Create(ctx context.Context, review *models.Review) error
	ProductExists(ctx context.Context, productID uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ForProduct(ctx context.Context, productID uuid.UUID) ([]Review, error) {
	reviews := []Review{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT r.id,
		       r.product_id,
		       u.username,
		       r.rating,
		       r.comment,
		       r.created_at
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.product_id = ?
		ORDER BY r.created_at DESC`, productID).
		Scan(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *repository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
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
