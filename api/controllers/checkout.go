package controllers

import (
	"net/http"

	"github.com/minishoplabs/minishop-backend/api/responses"
	"github.com/minishoplabs/minishop-backend/api/validators"
	ordersvc "github.com/minishoplabs/minishop-backend/internal/orders"
	pkgerrors "github.com/minishoplabs/minishop-backend/pkg/errors"
	"github.com/minishoplabs/minishop-backend/pkg/logger"
)

type checkoutRequest struct {
	ShippingAddress string `json:"shipping_address" validate:"required"`
	Phone           string `json:"phone"`
}

// Checkout converts the caller's cart into an order.
func Checkout(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Checkout(r.Context(), userID, ordersvc.CheckoutInput{
			ShippingAddress: payload.ShippingAddress,
			Phone:           payload.Phone,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
