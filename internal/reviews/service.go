package reviews

import (
	"context"
	"strings"

	"github.com/cmbeauty/storefront-backend/pkg/db/models"
	pkgerrors "github.com/cmbeauty/storefront-backend/pkg/errors"
	"github.com/google/uuid"
)

// CreateInput carries a new review.
type CreateInput struct {
	ProductID uuid.UUID
	UserID    uuid.UUID
	Rating    int
	Comment   string
}

// Service manages product reviews.
type Service interface {
	ForProduct(ctx context.Context, productID uuid.UUID) ([]Review, error)
	Create(ctx context.Context, input CreateInput) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ForProduct(ctx context.Context, productID uuid.UUID) ([]Review, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	reviews, err := s.repo.ForProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading reviews")
	}
	return reviews, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) error {
	if input.ProductID == uuid.Nil || input.UserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product and user ids are required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}

	exists, err := s.repo.ProductExists(ctx, input.ProductID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking product")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	review := models.Review{
		ID:        uuid.New(),
		ProductID: input.ProductID,
		UserID:    input.UserID,
		Rating:    input.Rating,
		Comment:   strings.TrimSpace(input.Comment),
	}
	if err := s.repo.Create(ctx, &review); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating review")
	}
	return nil
}
