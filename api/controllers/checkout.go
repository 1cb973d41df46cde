package controllers

import (
	"net/http"

	"github.com/cmbeauty/storefront-backend/api/responses"
	"github.com/cmbeauty/storefront-backend/internal/checkout"
	pkgerrors "github.com/cmbeauty/storefront-backend/pkg/errors"
	"github.com/cmbeauty/storefront-backend/pkg/logger"
)

// Checkout runs the purchase pipeline for the signed-in shopper. Business
// failures (stock shortfalls, thin funds) come back with HTTP 200 and the
// structured result so the storefront can render them; an empty cart is
// treated as a server-side fault per the legacy contract.
func Checkout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := shopperID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out, err := svc.Execute(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if out.State == checkout.StateEmptyCart {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart contains no items"))
			return
		}
		responses.WriteSuccess(w, out.Result)
	}
}
