package users

import (
	"context"
	"errors"
	"strings"

	"github.com/cmbeauty/storefront-backend/pkg/config"
	"github.com/cmbeauty/storefront-backend/pkg/db"
	"github.com/cmbeauty/storefront-backend/pkg/db/models"
	pkgerrors "github.com/cmbeauty/storefront-backend/pkg/errors"
	"github.com/cmbeauty/storefront-backend/pkg/security"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegisterInput carries a new account request. Fund is the opening
// store-credit balance.
type RegisterInput struct {
	Username        string
	Email           string
	Phone           string
	Password        string
	CardNumber      string
	ShippingAddress string
	Fund            decimal.Decimal
}

// ProfileUpdate carries the editable account fields. Nil means unchanged.
type ProfileUpdate struct {
	Email           *string
	Phone           *string
	CardNumber      *string
	ShippingAddress *string
	ImgPath         *string
	Password        *string
}

// Profile is the account as returned to its owner.
type Profile struct {
	ID              uuid.UUID       `json:"id"`
	Username        string          `json:"username"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	CardNumber      string          `json:"card_number"`
	Fund            decimal.Decimal `json:"fund"`
	ShippingAddress string          `json:"shipping_address"`
	ImgPath         *string         `json:"img_path"`
}

// Service manages shopper accounts.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*Profile, error)
	Authenticate(ctx context.Context, login, password string) (*Profile, error)
	Get(ctx context.Context, userID uuid.UUID) (*Profile, error)
	Update(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*Profile, error)
}

type service struct {
	repo     Repository
	password config.PasswordConfig
}

func NewService(repo Repository, password config.PasswordConfig) Service {
	return &service{repo: repo, password: password}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*Profile, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.Phone = strings.TrimSpace(input.Phone)
	if input.Username == "" || input.Email == "" || input.Phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username, email, and phone are required")
	}
	if input.Fund.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "opening fund cannot be negative")
	}

	hash, err := security.HashPassword(input.Password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "hashing password")
	}

	user := models.User{
		ID:              uuid.New(),
		Username:        input.Username,
		Email:           input.Email,
		Phone:           input.Phone,
		PasswordHash:    hash,
		CardNumber:      input.CardNumber,
		FundCents:       input.Fund.Shift(2).IntPart(),
		ShippingAddress: input.ShippingAddress,
	}
	if err := s.repo.Create(ctx, &user); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "username, email, or phone already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating user")
	}
	return profileOf(&user), nil
}

// Authenticate verifies the login/password pair. Unknown accounts and wrong
// passwords return the same unauthorized error.
func (s *service) Authenticate(ctx context.Context, login, password string) (*Profile, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "login and password are required")
	}

	user, err := s.repo.ByLogin(ctx, login)
	if errors.Is(err, ErrNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}
	return profileOf(user), nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	user, err := s.repo.ByID(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}
	return profileOf(user), nil
}

func (s *service) Update(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*Profile, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	fields := map[string]any{}
	if update.Email != nil {
		fields["email"] = strings.TrimSpace(strings.ToLower(*update.Email))
	}
	if update.Phone != nil {
		fields["phone"] = strings.TrimSpace(*update.Phone)
	}
	if update.CardNumber != nil {
		fields["card_number"] = *update.CardNumber
	}
	if update.ShippingAddress != nil {
		fields["shipping_address"] = *update.ShippingAddress
	}
	if update.ImgPath != nil {
		fields["img_path"] = *update.ImgPath
	}
	if update.Password != nil {
		hash, err := security.HashPassword(*update.Password, s.password)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "hashing password")
		}
		fields["password_hash"] = hash
	}

	if err := s.repo.UpdateProfile(ctx, userID, fields); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email or phone already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating user")
	}
	return s.Get(ctx, userID)
}

func profileOf(user *models.User) *Profile {
	return &Profile{
		ID:              user.ID,
		Username:        user.Username,
		Email:           user.Email,
		Phone:           user.Phone,
		CardNumber:      user.CardNumber,
		Fund:            decimal.New(user.FundCents, -2),
		ShippingAddress: user.ShippingAddress,
		ImgPath:         user.ImgPath,
	}
}
