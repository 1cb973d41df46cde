package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no product matches the lookup.
var ErrNotFound = errors.New("catalog: not found")

// Repository is the read surface over the product catalog.
type Repository interface {
	All(ctx context.Context) ([]Product, error)
	Search(ctx context.Context, term string) ([]Product, error)
	ByCategory(ctx context.Context, category string) ([]Product, error)
	ByID(ctx context.Context, id uuid.UUID) (*Product, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	p.id AS product_id,
	p.name,
	p.brand,
	p.color,
	p.category,
	p.product_type,
	p.cost_cents,
	p.description,
	p.img_path,
	s.stock`

func (r *repository) All(ctx context.Context) ([]Product, error) {
	products := []Product{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+productColumns+`
		FROM products p
		JOIN stock_records s ON s.product_id = p.id
		ORDER BY p.name`).
		Scan(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Search matches the term against name, brand and product type,
// case-insensitively.
func (r *repository) Search(ctx context.Context, term string) ([]Product, error) {
	products := []Product{}
	pattern := "%" + term + "%"
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+productColumns+`
		FROM products p
		JOIN stock_records s ON s.product_id = p.id
		WHERE lower(p.name) LIKE lower(?)
		   OR lower(p.brand) LIKE lower(?)
		   OR lower(p.product_type) LIKE lower(?)
		ORDER BY p.name`, pattern, pattern, pattern).
		Scan(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) ByCategory(ctx context.Context, category string) ([]Product, error) {
	products := []Product{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+productColumns+`
		FROM products p
		JOIN stock_records s ON s.product_id = p.id
		WHERE p.category = ?
		ORDER BY p.name`, category).
		Scan(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) ByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	var product Product
	res := r.db.WithContext(ctx).Raw(`
		SELECT `+productColumns+`
		FROM products p
		JOIN stock_records s ON s.product_id = p.id
		WHERE p.id = ?`, id).
		Scan(&product)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &product, nil
}
