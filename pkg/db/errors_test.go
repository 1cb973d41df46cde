package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolationPostgres(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_purchase_confirmation_product"}
	wrapped := fmt.Errorf("inserting purchases: %w", pgErr)

	if !IsUniqueViolation(wrapped, "") {
		t.Fatal("expected unscoped match")
	}
	if !IsUniqueViolation(wrapped, "idx_purchase_confirmation_product") {
		t.Fatal("expected scoped match")
	}
	if IsUniqueViolation(wrapped, "some_other_constraint") {
		t.Fatal("must not match a different constraint")
	}

	notUnique := &pgconn.PgError{Code: "23503"}
	if IsUniqueViolation(notUnique, "") {
		t.Fatal("foreign key violations are not unique violations")
	}
}

func TestIsUniqueViolationSQLite(t *testing.T) {
	err := errors.New("UNIQUE constraint failed: purchase_records.confirmation_id, purchase_records.product_id")
	if !IsUniqueViolation(err, "idx_purchase_confirmation_product") {
		t.Fatal("sqlite wording must match regardless of constraint name")
	}
	if IsUniqueViolation(errors.New("connection refused"), "") {
		t.Fatal("unrelated errors must not match")
	}
	if IsUniqueViolation(nil, "") {
		t.Fatal("nil must not match")
	}
}
