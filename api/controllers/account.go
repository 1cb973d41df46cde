package controllers

import (
	"net/http"

	"github.com/cmbeauty/storefront-backend/api/responses"
	"github.com/cmbeauty/storefront-backend/api/validators"
	"github.com/cmbeauty/storefront-backend/internal/users"
	"github.com/cmbeauty/storefront-backend/pkg/logger"
)

type updateProfileRequest struct {
	Email           *string `json:"email" validate:"omitempty,email"`
	Phone           *string `json:"phone" validate:"omitempty,min=7,max=32"`
	CardNumber      *string `json:"card_number" validate:"omitempty,min=12,max=19"`
	ShippingAddress *string `json:"shipping_address" validate:"omitempty,max=500"`
	ImgPath         *string `json:"img_path" validate:"omitempty,max=500"`
	Password        *string `json:"password" validate:"omitempty,min=8,max=128"`
}

func Me(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := shopperID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		profile, err := svc.Get(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

func MeUpdate(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := shopperID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateProfileRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.Update(r.Context(), userID, users.ProfileUpdate{
			Email:           req.Email,
			Phone:           req.Phone,
			CardNumber:      req.CardNumber,
			ShippingAddress: req.ShippingAddress,
			ImgPath:         req.ImgPath,
			Password:        req.Password,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}
