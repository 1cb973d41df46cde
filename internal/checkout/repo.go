package checkout

import (
	"context"

	"github.com/cmbeauty/storefront-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository is the storage surface the checkout pipeline runs against.
// Mutating operations return whether the guarded write applied so the
// caller can distinguish a lost race from a storage fault.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ResolveCart(ctx context.Context, userID uuid.UUID) ([]CartItem, error)
	UserFundCents(ctx context.Context, userID uuid.UUID) (int64, error)
	CurrentStock(ctx context.Context, productID uuid.UUID) (int, error)
	DecrementStock(ctx context.Context, productID uuid.UUID, qty int) (bool, error)
	DebitFund(ctx context.Context, userID uuid.UUID, amountCents int64) (bool, error)
	ConfirmationExists(ctx context.Context, confirmationID string) (bool, error)
	InsertPurchases(ctx context.Context, records []models.PurchaseRecord) error
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds the GORM-backed checkout repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// ResolveCart joins the user's cart lines with catalog pricing and live
// stock into the priced snapshot the rest of the pipeline consumes.
func (r *repository) ResolveCart(ctx context.Context, userID uuid.UUID) ([]CartItem, error) {
	items := []CartItem{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id AS product_id,
		       p.name,
		       p.brand,
		       p.color,
		       p.cost_cents,
		       c.quantity,
		       s.stock
		FROM cart_lines c
		JOIN products p ON p.id = c.product_id
		JOIN stock_records s ON s.product_id = c.product_id
		WHERE c.user_id = ?
		ORDER BY c.created_at, p.name`, userID).
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) UserFundCents(ctx context.Context, userID uuid.UUID) (int64, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Select("fund_cents").
		Where("id = ?", userID).
		Take(&user).Error
	if err != nil {
		return 0, err
	}
	return user.FundCents, nil
}

func (r *repository) CurrentStock(ctx context.Context, productID uuid.UUID) (int, error) {
	var record models.StockRecord
	err := r.db.WithContext(ctx).
		Select("stock").
		Where("product_id = ?", productID).
		Take(&record).Error
	if err != nil {
		return 0, err
	}
	return record.Stock, nil
}

// DecrementStock applies a guarded decrement. The stock >= qty predicate
// keeps the count from ever crossing zero under concurrent checkouts; a
// false return means the guard rejected the write.
func (r *repository) DecrementStock(ctx context.Context, productID uuid.UUID, qty int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.StockRecord{}).
		Where("product_id = ? AND stock >= ?", productID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// DebitFund applies a guarded single debit of the full order total.
func (r *repository) DebitFund(ctx context.Context, userID uuid.UUID, amountCents int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND fund_cents >= ?", userID, amountCents).
		UpdateColumn("fund_cents", gorm.Expr("fund_cents - ?", amountCents))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) ConfirmationExists(ctx context.Context, confirmationID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PurchaseRecord{}).
		Where("confirmation_id = ?", confirmationID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertPurchases writes the order's line records under a savepoint so a
// confirmation-id collision can be retried without aborting the enclosing
// transaction.
func (r *repository) InsertPurchases(ctx context.Context, records []models.PurchaseRecord) error {
	session := r.db.WithContext(ctx)
	if err := session.SavePoint("purchase_insert").Error; err != nil {
		return err
	}
	if err := session.Create(&records).Error; err != nil {
		_ = session.RollbackTo("purchase_insert").Error
		return err
	}
	return nil
}

func (r *repository) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartLine{}).Error
}
