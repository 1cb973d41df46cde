package checkout

import (
	"context"
	stdErrors "errors"
	"time"

	"github.com/cmbeauty/storefront-backend/pkg/db"
	"github.com/cmbeauty/storefront-backend/pkg/db/models"
	pkgerrors "github.com/cmbeauty/storefront-backend/pkg/errors"
	"github.com/cmbeauty/storefront-backend/pkg/logger"
	"github.com/cmbeauty/storefront-backend/pkg/metrics"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultConfirmationAttempts = 5

// errApplyConflict signals that a guarded write inside the purchase
// transaction lost a race. The transaction rolls back and the conflict
// outcome captured alongside it is returned to the caller.
var errApplyConflict = stdErrors.New("checkout: apply conflict")

// TxRunner executes a function inside one database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service drives a checkout from cart resolution through purchase commit.
type Service interface {
	Execute(ctx context.Context, userID uuid.UUID) (*Outcome, error)
}

type service struct {
	tx       TxRunner
	repo     Repository
	attempts int
	metrics  *metrics.CheckoutMetrics
	logg     *logger.Logger
}

// NewService wires the checkout orchestrator. attempts bounds confirmation-id
// regeneration; zero or negative selects the default.
func NewService(tx TxRunner, repo Repository, attempts int, m *metrics.CheckoutMetrics, logg *logger.Logger) Service {
	if attempts <= 0 {
		attempts = defaultConfirmationAttempts
	}
	return &service{
		tx:       tx,
		repo:     repo,
		attempts: attempts,
		metrics:  m,
		logg:     logg,
	}
}

// Execute runs the checkout pipeline. Business failures (shortfalls, thin
// funds, an empty cart) come back as an Outcome with a nil error; a non-nil
// error means a storage or dependency fault and nothing was committed.
func (s *service) Execute(ctx context.Context, userID uuid.UUID) (out *Outcome, err error) {
	start := time.Now()
	defer func() {
		label := string(StateFault)
		if err == nil && out != nil {
			label = string(out.State)
		}
		s.metrics.Observe(label, time.Since(start))
	}()

	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	items, err := s.repo.ResolveCart(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolving cart")
	}
	if len(items) == 0 {
		return &Outcome{State: StateEmptyCart, Result: emptyResult()}, nil
	}

	// Advisory pre-checks. They keep obviously doomed carts out of the
	// transaction; the guarded writes below remain the source of truth.
	if shortfalls := CheckStock(items); len(shortfalls) > 0 {
		return stockShortfallOutcome(shortfalls), nil
	}

	fund, err := s.repo.UserFundCents(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reading fund balance")
	}
	total := TotalCostCents(items)
	if fund < total {
		return insufficientFundsOutcome(total - fund), nil
	}

	var (
		confirmationID  string
		conflictOutcome *Outcome
	)
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		for _, item := range items {
			ok, err := repo.DecrementStock(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				stock, err := repo.CurrentStock(ctx, item.ProductID)
				if err != nil {
					return err
				}
				conflictOutcome = stockShortfallOutcome([]StockShortfall{{
					ProductName: item.Name,
					Stock:       stock,
				}})
				return errApplyConflict
			}
		}

		ok, err := repo.DebitFund(ctx, userID, total)
		if err != nil {
			return err
		}
		if !ok {
			fund, err := repo.UserFundCents(ctx, userID)
			if err != nil {
				return err
			}
			short := total - fund
			if short < 0 {
				short = 0
			}
			conflictOutcome = insufficientFundsOutcome(short)
			return errApplyConflict
		}

		confirmationID, err = s.recordPurchases(ctx, repo, userID, items)
		if err != nil {
			return err
		}

		return repo.ClearCart(ctx, userID)
	})
	if txErr != nil {
		if stdErrors.Is(txErr, errApplyConflict) && conflictOutcome != nil {
			return conflictOutcome, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "applying purchase")
	}

	if s.logg != nil {
		ctx = s.logg.WithConfirmationID(ctx, confirmationID)
		s.logg.Info(ctx, "checkout committed")
	}
	return doneOutcome(confirmationID, items), nil
}

// recordPurchases allocates a confirmation id and writes one record per cart
// line under it. A collision with an existing id triggers regeneration, up to
// the configured attempt bound.
func (s *service) recordPurchases(ctx context.Context, repo Repository, userID uuid.UUID, items []CartItem) (string, error) {
	for attempt := 0; attempt < s.attempts; attempt++ {
		id, err := NewConfirmationID()
		if err != nil {
			return "", err
		}
		exists, err := repo.ConfirmationExists(ctx, id)
		if err != nil {
			return "", err
		}
		if exists {
			continue
		}

		records := make([]models.PurchaseRecord, 0, len(items))
		for _, item := range items {
			records = append(records, models.PurchaseRecord{
				ConfirmationID: id,
				UserID:         userID,
				ProductID:      item.ProductID,
				Quantity:       item.Quantity,
			})
		}
		if err := repo.InsertPurchases(ctx, records); err != nil {
			if db.IsUniqueViolation(err, "idx_purchase_confirmation_product") {
				continue
			}
			return "", err
		}
		return id, nil
	}
	return "", pkgerrors.New(pkgerrors.CodeConflict, "could not allocate a unique confirmation id")
}

func stockShortfallOutcome(shortfalls []StockShortfall) *Outcome {
	result := emptyResult()
	result.Fail.Products = shortfalls
	return &Outcome{State: StateStockShortfall, Result: result}
}

func insufficientFundsOutcome(shortCents int64) *Outcome {
	result := emptyResult()
	short := centsToAmount(shortCents)
	result.Fail.ShortMoney = &short
	return &Outcome{State: StateInsufficientFunds, Result: result}
}

func doneOutcome(confirmationID string, items []CartItem) *Outcome {
	result := emptyResult()
	result.Successful.Confirmation = []string{confirmationID}
	for _, item := range items {
		result.Successful.Products = append(result.Successful.Products, PurchasedProduct{
			Name:     item.Name,
			Brand:    item.Brand,
			Color:    item.Color,
			Cost:     centsToAmount(item.CostCents),
			Quantity: item.Quantity,
		})
	}
	return &Outcome{State: StateDone, Result: result}
}
