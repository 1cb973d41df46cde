package cart

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
	dsn := "file:cart_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.StockRecord{}, &models.CartLine{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, costCents int64, stock int) uuid.UUID {
	t.Helper()
	product := models.Product{
		ID:        uuid.New(),
		Name:      name,
		Brand:     "Glow Co",
		Color:     "nude",
		Category:  "face",
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

func TestAddItemFoldsDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	userID := uuid.New()
	productID := seedProduct(t, db, "Tinted Balm", 1500, 10)

	if err := svc.AddItem(ctx, userID, productID, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.AddItem(ctx, userID, productID, 3); err != nil {
		t.Fatalf("add again: %v", err)
	}

	view, err := svc.Get(ctx, userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(view.Lines) != 1 {
		t.Fatalf("expected one folded line, got %+v", view.Lines)
	}
	if view.Lines[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", view.Lines[0].Quantity)
	}
	if !view.Subtotal.Equal(decimal.New(7500, -2)) {
		t.Fatalf("expected subtotal 75.00, got %s", view.Subtotal)
	}
}

func TestAddItemUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db))

	err := svc.AddItem(context.Background(), uuid.New(), uuid.New(), 1)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAddItemRejectsBadQuantity(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db))

	err := svc.AddItem(context.Background(), uuid.New(), uuid.New(), 0)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSetItemQuantity(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	userID := uuid.New()
	productID := seedProduct(t, db, "Lash Lift", 2400, 4)
	if err := svc.AddItem(ctx, userID, productID, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := svc.SetItemQuantity(ctx, userID, productID, 3); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	view, err := svc.Get(ctx, userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view.Lines[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", view.Lines[0].Quantity)
	}

	err = svc.SetItemQuantity(ctx, userID, uuid.New(), 2)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for absent line, got %v", err)
	}
}

func TestRemoveItem(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	userID := uuid.New()
	productID := seedProduct(t, db, "Clay Mask", 3200, 8)
	if err := svc.AddItem(ctx, userID, productID, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := svc.RemoveItem(ctx, userID, productID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	view, err := svc.Get(ctx, userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(view.Lines) != 0 {
		t.Fatalf("expected empty cart, got %+v", view.Lines)
	}

	err = svc.RemoveItem(ctx, userID, productID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found on double remove, got %v", err)
	}
}

func TestGetEmptyCart(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db))

	view, err := svc.Get(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(view.Lines) != 0 {
		t.Fatalf("expected no lines, got %+v", view.Lines)
	}
	if !view.Subtotal.Equal(decimal.Zero) {
		t.Fatalf("expected zero subtotal, got %s", view.Subtotal)
	}
}
