package controllers

import (
	"net/http"

	"github.com/qwertymuzaffar/retail-backoffice/api/responses"
	"github.com/qwertymuzaffar/retail-backoffice/api/validators"
	ordersvc "github.com/qwertymuzaffar/retail-backoffice/internal/orders"
	"github.com/qwertymuzaffar/retail-backoffice/pkg/logger"
)

// OrderGet loads an order header with its line items.
func OrderGet(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParsePathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		found, err := svc.GetOrder(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, found)
	}
}
