package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/cmbeauty/storefront-backend/pkg/db/models"
	pkgerrors "github.com/cmbeauty/storefront-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// stubRepo lets the regeneration loop be exercised without a database.
type stubRepo struct {
	existsResults []bool
	insertErrs    []error
	inserted      [][]models.PurchaseRecord
}

func (s *stubRepo) WithTx(*gorm.DB) Repository { return s }

func (s *stubRepo) ResolveCart(context.Context, uuid.UUID) ([]CartItem, error) {
	return nil, errors.New("not implemented")
}
func (s *stubRepo) UserFundCents(context.Context, uuid.UUID) (int64, error) {
	return 0, errors.New("not implemented")
}
func (s *stubRepo) CurrentStock(context.Context, uuid.UUID) (int, error) {
	return 0, errors.New("not implemented")
}
func (s *stubRepo) DecrementStock(context.Context, uuid.UUID, int) (bool, error) {
	return false, errors.New("not implemented")
}
func (s *stubRepo) DebitFund(context.Context, uuid.UUID, int64) (bool, error) {
	return false, errors.New("not implemented")
}
func (s *stubRepo) ClearCart(context.Context, uuid.UUID) error {
	return errors.New("not implemented")
}

func (s *stubRepo) ConfirmationExists(context.Context, string) (bool, error) {
	if len(s.existsResults) == 0 {
		return false, nil
	}
	result := s.existsResults[0]
	s.existsResults = s.existsResults[1:]
	return result, nil
}

func (s *stubRepo) InsertPurchases(_ context.Context, records []models.PurchaseRecord) error {
	if len(s.insertErrs) > 0 {
		err := s.insertErrs[0]
		s.insertErrs = s.insertErrs[1:]
		if err != nil {
			return err
		}
	}
	s.inserted = append(s.inserted, records)
	return nil
}

func TestRecordPurchasesRetriesOnExistingID(t *testing.T) {
	repo := &stubRepo{existsResults: []bool{true, true, false}}
	svc := &service{attempts: 5}

	items := []CartItem{{ProductID: uuid.New(), Quantity: 2}}
	id, err := svc.recordPurchases(context.Background(), repo, uuid.New(), items)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(id) != ConfirmationLength {
		t.Fatalf("unexpected id %q", id)
	}
	if len(repo.inserted) != 1 || len(repo.inserted[0]) != 1 {
		t.Fatalf("unexpected inserts: %+v", repo.inserted)
	}
	if repo.inserted[0][0].ConfirmationID != id {
		t.Fatalf("records carry wrong id: %+v", repo.inserted[0])
	}
}

func TestRecordPurchasesRetriesOnUniqueViolation(t *testing.T) {
	repo := &stubRepo{insertErrs: []error{
		errors.New(`duplicate key value violates unique constraint "idx_purchase_confirmation_product"`),
		nil,
	}}
	svc := &service{attempts: 5}

	items := []CartItem{{ProductID: uuid.New(), Quantity: 1}}
	if _, err := svc.recordPurchases(context.Background(), repo, uuid.New(), items); err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("expected exactly one successful insert, got %d", len(repo.inserted))
	}
}

func TestRecordPurchasesGivesUpAfterAttempts(t *testing.T) {
	repo := &stubRepo{existsResults: []bool{true, true, true}}
	svc := &service{attempts: 3}

	items := []CartItem{{ProductID: uuid.New(), Quantity: 1}}
	_, err := svc.recordPurchases(context.Background(), repo, uuid.New(), items)
	if err == nil {
		t.Fatal("expected exhaustion error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.inserted) != 0 {
		t.Fatalf("no insert should have landed, got %+v", repo.inserted)
	}
}

func TestRecordPurchasesSurfacesInsertFault(t *testing.T) {
	repo := &stubRepo{insertErrs: []error{errors.New("disk on fire")}}
	svc := &service{attempts: 3}

	items := []CartItem{{ProductID: uuid.New(), Quantity: 1}}
	if _, err := svc.recordPurchases(context.Background(), repo, uuid.New(), items); err == nil {
		t.Fatal("expected insert fault to surface")
	}
}
