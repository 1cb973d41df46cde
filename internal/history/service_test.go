package history

import (
	"context"
	"testing"

	"github.com/cmbeauty/storefront-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:history_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.PurchaseRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, costCents int64) uuid.UUID {
	t.Helper()
	product := models.Product{ID: uuid.New(), Name: name, Brand: "Glow Co", Category: "skin", CostCents: costCents}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product.ID
}

func seedPurchase(t *testing.T, db *gorm.DB, confirmationID string, userID, productID uuid.UUID, qty int) {
	t.Helper()
	record := models.PurchaseRecord{
		ConfirmationID: confirmationID,
		UserID:         userID,
		ProductID:      productID,
		Quantity:       qty,
	}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("seed purchase: %v", err)
	}
}

func TestOrdersGroupsByConfirmation(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	userID := uuid.New()
	oil := seedProduct(t, db, "Amber Oil", 2500)
	tint := seedProduct(t, db, "Berry Tint", 1000)

	seedPurchase(t, db, "AAAAAAAAAAAA", userID, oil, 2)
	seedPurchase(t, db, "AAAAAAAAAAAA", userID, tint, 1)
	seedPurchase(t, db, "BBBBBBBBBBBB", userID, tint, 3)

	orders, err := svc.Orders(ctx, userID)
	if err != nil {
		t.Fatalf("orders: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}

	first := orders[0]
	if first.ConfirmationID != "AAAAAAAAAAAA" {
		t.Fatalf("expected oldest order first, got %q", first.ConfirmationID)
	}
	if len(first.Lines) != 2 {
		t.Fatalf("expected 2 lines in first order, got %+v", first.Lines)
	}
	if !first.Total.Equal(decimal.New(6000, -2)) {
		t.Fatalf("expected total 60.00, got %s", first.Total)
	}

	second := orders[1]
	if second.ConfirmationID != "BBBBBBBBBBBB" || len(second.Lines) != 1 {
		t.Fatalf("unexpected second order: %+v", second)
	}
	if !second.Total.Equal(decimal.New(3000, -2)) {
		t.Fatalf("expected total 30.00, got %s", second.Total)
	}
}

func TestOrdersScopedToUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	buyer := uuid.New()
	other := uuid.New()
	oil := seedProduct(t, db, "Amber Oil", 2500)
	seedPurchase(t, db, "CCCCCCCCCCCC", other, oil, 1)

	orders, err := svc.Orders(ctx, buyer)
	if err != nil {
		t.Fatalf("orders: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("expected no orders for buyer, got %+v", orders)
	}
}
