package controllers

import (
	"net/http"

	"github.com/cmbeauty/storefront-backend/api/middleware"
	"github.com/cmbeauty/storefront-backend/api/responses"
	"github.com/cmbeauty/storefront-backend/api/validators"
	"github.com/cmbeauty/storefront-backend/internal/auth"
	"github.com/cmbeauty/storefront-backend/internal/users"
	"github.com/cmbeauty/storefront-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

type registerRequest struct {
	Username        string          `json:"username" validate:"required,min=3,max=32"`
	Email           string          `json:"email" validate:"required,email"`
	Phone           string          `json:"phone" validate:"required,min=7,max=32"`
	Password        string          `json:"password" validate:"required,min=8,max=128"`
	CardNumber      string          `json:"card_number" validate:"required,min=12,max=19"`
	ShippingAddress string          `json:"shipping_address" validate:"required,max=500"`
	Fund            decimal.Decimal `json:"fund"`
}

type loginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthRegister creates the account and signs the shopper straight in.
func AuthRegister(userSvc users.Service, authSvc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		_, err := userSvc.Register(r.Context(), users.RegisterInput{
			Username:        req.Username,
			Email:           req.Email,
			Phone:           req.Phone,
			Password:        req.Password,
			CardNumber:      req.CardNumber,
			ShippingAddress: req.ShippingAddress,
			Fund:            req.Fund,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := authSvc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

func AuthLogin(authSvc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := authSvc.Login(r.Context(), req.Login, req.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AuthLogout revokes the session tied to the presented token's jti.
func AuthLogout(authSvc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accessID := middleware.AccessIDFromContext(r.Context())
		if err := authSvc.Logout(r.Context(), accessID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "signed_out"})
	}
}
