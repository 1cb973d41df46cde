package catalog

import (
	"context"
	"errors"
	"strings"

	pkgerrors "github.com/cmbeauty/storefront-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is one catalog row with live stock, as shown to shoppers.
type Product struct {
	ProductID   uuid.UUID `json:"product_id"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand"`
	Color       string    `json:"color"`
	Category    string    `json:"category"`
	ProductType string    `json:"product_type"`
	CostCents   int64     `json:"-"`
	Description string    `json:"description"`
	ImgPath     string    `json:"img_path"`
	Stock       int       `json:"stock"`
}

// View is Product with the price rendered as a decimal amount.
type View struct {
	Product
	Cost decimal.Decimal `json:"cost"`
}

// Service exposes catalog browsing.
type Service interface {
	List(ctx context.Context) ([]View, error)
	Search(ctx context.Context, term string) ([]View, error)
	ByCategory(ctx context.Context, category string) ([]View, error)
	Get(ctx context.Context, id uuid.UUID) (*View, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]View, error) {
	products, err := s.repo.All(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}
	return viewsOf(products), nil
}

func (s *service) Search(ctx context.Context, term string) ([]View, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search term is required")
	}
	products, err := s.repo.Search(ctx, term)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "searching products")
	}
	return viewsOf(products), nil
}

func (s *service) ByCategory(ctx context.Context, category string) ([]View, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	products, err := s.repo.ByCategory(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "filtering products")
	}
	return viewsOf(products), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*View, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.repo.ByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	view := viewOf(*product)
	return &view, nil
}

func viewsOf(products []Product) []View {
	views := []View{}
	for _, product := range products {
		views = append(views, viewOf(product))
	}
	return views
}

func viewOf(product Product) View {
	return View{
		Product: product,
		Cost:    decimal.New(product.CostCents, -2),
	}
}
