package controllers

import (
	"net/http"

	"github.com/minishoplabs/minishop-backend/api/responses"
	ordersvc "github.com/minishoplabs/minishop-backend/internal/orders"
	pkgerrors "github.com/minishoplabs/minishop-backend/pkg/errors"
	"github.com/minishoplabs/minishop-backend/pkg/logger"
)

// ListOrders returns the caller's order history, newest first.
func ListOrders(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		orders, err := svc.ListOrders(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orders)
	}
}
