package history

import (
	"context"
	"time"

	pkgerrors "github.com/cmbeauty/storefront-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLine is one purchased product within an order.
type OrderLine struct {
	Name     string          `json:"name"`
	Brand    string          `json:"brand"`
	Color    string          `json:"color"`
	Cost     decimal.Decimal `json:"cost"`
	Quantity int             `json:"quantity"`
}

// Order groups the purchase lines committed under one confirmation id.
type Order struct {
	ConfirmationID string          `json:"confirmation_id"`
	PlacedAt       time.Time       `json:"placed_at"`
	Lines          []OrderLine     `json:"lines"`
	Total          decimal.Decimal `json:"total"`
}

// Service exposes the shopper's purchase history.
type Service interface {
	Orders(ctx context.Context, userID uuid.UUID) ([]Order, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Orders returns purchases grouped by confirmation id, oldest first.
func (s *service) Orders(ctx context.Context, userID uuid.UUID) ([]Order, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	rows, err := s.repo.ForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading purchase history")
	}

	orders := []Order{}
	var totals []int64
	index := map[string]int{}
	for _, row := range rows {
		i, ok := index[row.ConfirmationID]
		if !ok {
			i = len(orders)
			index[row.ConfirmationID] = i
			orders = append(orders, Order{
				ConfirmationID: row.ConfirmationID,
				PlacedAt:       row.CreatedAt,
				Lines:          []OrderLine{},
			})
			totals = append(totals, 0)
		}
		orders[i].Lines = append(orders[i].Lines, OrderLine{
			Name:     row.Name,
			Brand:    row.Brand,
			Color:    row.Color,
			Cost:     decimal.New(row.CostCents, -2),
			Quantity: row.Quantity,
		})
		totals[i] += int64(row.Quantity) * row.CostCents
	}
	for i := range orders {
		orders[i].Total = decimal.New(totals[i], -2)
	}
	return orders, nil
}
