package users

import (
	"context"
	"testing"

	"github.com/cmbeauty/storefront-backend/pkg/config"
	"github.com/cmbeauty/storefront-backend/pkg/db/models"
	pkgerrors "github.com/cmbeauty/storefront-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:users_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func fastPassword() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
}

func validInput() RegisterInput {
	return RegisterInput{
		Username:        "casey",
		Email:           "Casey@Example.com",
		Phone:           "555-0101",
		Password:        "hunter2",
		CardNumber:      "4111111111111111",
		ShippingAddress: "1 Main St",
		Fund:            decimal.New(10000, -2),
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db), fastPassword())
	ctx := context.Background()

	profile, err := svc.Register(ctx, validInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if profile.Email != "casey@example.com" {
		t.Fatalf("expected normalized email, got %q", profile.Email)
	}
	if !profile.Fund.Equal(decimal.New(10000, -2)) {
		t.Fatalf("expected fund 100.00, got %s", profile.Fund)
	}

	authed, err := svc.Authenticate(ctx, "casey", "hunter2")
	if err != nil {
		t.Fatalf("authenticate by username: %v", err)
	}
	if authed.ID != profile.ID {
		t.Fatal("authenticated a different user")
	}

	if _, err := svc.Authenticate(ctx, "casey@example.com", "hunter2"); err != nil {
		t.Fatalf("authenticate by email: %v", err)
	}
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db), fastPassword())
	ctx := context.Background()

	if _, err := svc.Register(ctx, validInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Authenticate(ctx, "casey", "wrong")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for wrong password, got %v", err)
	}

	_, err = svc.Authenticate(ctx, "nobody", "hunter2")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for unknown login, got %v", err)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db), fastPassword())
	ctx := context.Background()

	if _, err := svc.Register(ctx, validInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	dup := validInput()
	dup.Email = "other@example.com"
	dup.Phone = "555-0102"
	_, err := svc.Register(ctx, dup)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict for duplicate username, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db), fastPassword())
	ctx := context.Background()

	profile, err := svc.Register(ctx, validInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	address := "9 Ocean Ave"
	password := "correct horse"
	updated, err := svc.Update(ctx, profile.ID, ProfileUpdate{
		ShippingAddress: &address,
		Password:        &password,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ShippingAddress != address {
		t.Fatalf("expected new address, got %q", updated.ShippingAddress)
	}

	if _, err := svc.Authenticate(ctx, "casey", password); err != nil {
		t.Fatalf("authenticate with new password: %v", err)
	}
	_, err = svc.Authenticate(ctx, "casey", "hunter2")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("old password must stop working, got %v", err)
	}
}

func TestUpdateUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db), fastPassword())

	address := "nowhere"
	_, err := svc.Update(context.Background(), uuid.New(), ProfileUpdate{ShippingAddress: &address})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
