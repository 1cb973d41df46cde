package cart

import (
	"context"

	pkgerrors "github.com/cmbeauty/storefront-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line is one cart row joined with catalog pricing and stock for display.
type Line struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Brand     string    `json:"brand"`
	Color     string    `json:"color"`
	ImgPath   string    `json:"img_path"`
	CostCents int64     `json:"-"`
	Quantity  int       `json:"quantity"`
	Stock     int       `json:"stock"`
}

// View is the cart as returned to clients: lines plus a priced subtotal.
type View struct {
	Lines    []LineView      `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// LineView is Line with the unit cost rendered as a decimal amount.
type LineView struct {
	Line
	Cost decimal.Decimal `json:"cost"`
}

// Service manages the shopper's in-progress selection.
type Service interface {
	AddItem(ctx context.Context, userID, productID uuid.UUID, qty int) error
	SetItemQuantity(ctx context.Context, userID, productID uuid.UUID, qty int) error
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) error
	Get(ctx context.Context, userID uuid.UUID) (*View, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) AddItem(ctx context.Context, userID, productID uuid.UUID, qty int) error {
	if err := validateLine(userID, productID, qty); err != nil {
		return err
	}
	exists, err := s.repo.ProductExists(ctx, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking product")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if err := s.repo.AddLine(ctx, userID, productID, qty); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "adding cart line")
	}
	return nil
}

func (s *service) SetItemQuantity(ctx context.Context, userID, productID uuid.UUID, qty int) error {
	if err := validateLine(userID, productID, qty); err != nil {
		return err
	}
	ok, err := s.repo.SetQuantity(ctx, userID, productID, qty)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating cart line")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}
	return nil
}

func (s *service) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	if userID == uuid.Nil || productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user and product ids are required")
	}
	ok, err := s.repo.RemoveLine(ctx, userID, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "removing cart line")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}
	return nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*View, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	lines, err := s.repo.Lines(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}

	view := &View{Lines: []LineView{}}
	var subtotalCents int64
	for _, line := range lines {
		subtotalCents += int64(line.Quantity) * line.CostCents
		view.Lines = append(view.Lines, LineView{
			Line: line,
			Cost: decimal.New(line.CostCents, -2),
		})
	}
	view.Subtotal = decimal.New(subtotalCents, -2)
	return view, nil
}

func validateLine(userID, productID uuid.UUID, qty int) error {
	if userID == uuid.Nil || productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user and product ids are required")
	}
	if qty < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	return nil
}
