package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// State is the terminal state of one checkout attempt.
type State string

const (
	StateDone              State = "done"
	StateEmptyCart         State = "empty_cart"
	StateStockShortfall    State = "stock_shortfall"
	StateInsufficientFunds State = "insufficient_funds"
	StateFault             State = "fault"
)

// CartItem is one cart line enriched with the product's live stock and price.
// The whole checkout works off this single priced snapshot; prices are never
// re-read between validation steps.
type CartItem struct {
	ProductID uuid.UUID
	Name      string
	Brand     string
	Color     string
	CostCents int64
	Quantity  int
	Stock     int
}

// StockShortfall reports one product whose requested quantity exceeds stock.
// A stock of 0 means the product is out of stock entirely.
type StockShortfall struct {
	ProductName string `json:"product_name"`
	Stock       int    `json:"stock"`
}

// PurchasedProduct is one receipt line for a committed purchase.
type PurchasedProduct struct {
	Name     string          `json:"name"`
	Brand    string          `json:"brand"`
	Color    string          `json:"color"`
	Cost     decimal.Decimal `json:"cost"`
	Quantity int             `json:"quantity"`
}

// FailureReport carries the business-failure half of a checkout result.
type FailureReport struct {
	Products   []StockShortfall `json:"products"`
	ShortMoney *decimal.Decimal `json:"shortmoney"`
}

// Receipt carries the success half of a checkout result.
type Receipt struct {
	Confirmation []string           `json:"confirmation"`
	Products     []PurchasedProduct `json:"products"`
}

// Result is the structured outcome returned to the caller. Exactly one of
// Fail.Products non-empty, Fail.ShortMoney non-nil, or Successful populated
// holds per invocation.
type Result struct {
	Fail       FailureReport `json:"fail"`
	Successful Receipt       `json:"successful"`
}

// Outcome pairs the terminal state with the serializable result.
type Outcome struct {
	State  State
	Result Result
}

func emptyResult() Result {
	return Result{
		Fail: FailureReport{
			Products: []StockShortfall{},
		},
		Successful: Receipt{
			Confirmation: []string{},
			Products:     []PurchasedProduct{},
		},
	}
}

// centsToAmount renders an integer cent value as a two-decimal amount.
func centsToAmount(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
