package catalog

import (
	"context"
	"testing"

	"github.com/cmbeauty/storefront-backend/pkg/db/models"
	pkgerrors "github.com/cmbeauty/storefront-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:catalog_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.StockRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name, brand, category string, costCents int64, stock int) uuid.UUID {
	t.Helper()
	product := models.Product{
		ID:        uuid.New(),
		Name:      name,
		Brand:     brand,
		Color:     "neutral",
		Category:  category,
		CostCents: costCents,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	if err := db.Create(&models.StockRecord{ProductID: product.ID, Stock: stock}).Error; err != nil {
		t.Fatalf("seed stock: %v", err)
	}
	return product.ID
}

func TestListReturnsPricedProducts(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db))

	seedProduct(t, db, "Amber Oil", "Glow Co", "skin", 2599, 7)
	seedProduct(t, db, "Berry Tint", "Petal", "lips", 1299, 0)

	views, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 products, got %d", len(views))
	}
	if views[0].Name != "Amber Oil" {
		t.Fatalf("expected name ordering, got %q first", views[0].Name)
	}
	if !views[0].Cost.Equal(decimal.New(2599, -2)) {
		t.Fatalf("expected cost 25.99, got %s", views[0].Cost)
	}
	if views[1].Stock != 0 {
		t.Fatalf("expected stock 0 for Berry Tint, got %d", views[1].Stock)
	}
}

func TestSearchMatchesNameBrandAndType(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	seedProduct(t, db, "Amber Oil", "Glow Co", "skin", 2599, 7)
	seedProduct(t, db, "Berry Tint", "Petal", "lips", 1299, 3)

	serum := models.Product{
		ID:          uuid.New(),
		Name:        "Night Repair",
		Brand:       "Glow Co",
		Color:       "neutral",
		Category:    "skin",
		ProductType: "Serum",
		CostCents:   4999,
	}
	if err := db.Create(&serum).Error; err != nil {
		t.Fatalf("seed serum: %v", err)
	}
	if err := db.Create(&models.StockRecord{ProductID: serum.ID, Stock: 2}).Error; err != nil {
		t.Fatalf("seed serum stock: %v", err)
	}

	views, err := svc.Search(ctx, "amber")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(views) != 1 || views[0].Name != "Amber Oil" {
		t.Fatalf("unexpected name match: %+v", views)
	}

	views, err = svc.Search(ctx, "PETAL")
	if err != nil {
		t.Fatalf("search brand: %v", err)
	}
	if len(views) != 1 || views[0].Brand != "Petal" {
		t.Fatalf("unexpected brand match: %+v", views)
	}

	views, err = svc.Search(ctx, "serum")
	if err != nil {
		t.Fatalf("search type: %v", err)
	}
	if len(views) != 1 || views[0].Name != "Night Repair" {
		t.Fatalf("unexpected type match: %+v", views)
	}

	_, err = svc.Search(ctx, "   ")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestByCategory(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db))

	seedProduct(t, db, "Amber Oil", "Glow Co", "skin", 2599, 7)
	seedProduct(t, db, "Berry Tint", "Petal", "lips", 1299, 3)

	views, err := svc.ByCategory(context.Background(), "lips")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(views) != 1 || views[0].Category != "lips" {
		t.Fatalf("unexpected filter result: %+v", views)
	}
}

func TestGetProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	id := seedProduct(t, db, "Amber Oil", "Glow Co", "skin", 2599, 7)

	view, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view.ProductID != id || view.Stock != 7 {
		t.Fatalf("unexpected product: %+v", view)
	}

	_, err = svc.Get(ctx, uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
