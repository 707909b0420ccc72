package controllers

import (
	"net/http"

	"github.com/qwertymuzaffar/retail-backoffice/api/responses"
	"github.com/qwertymuzaffar/retail-backoffice/api/validators"
	customersvc "github.com/qwertymuzaffar/retail-backoffice/internal/customers"
	ordersvc "github.com/qwertymuzaffar/retail-backoffice/internal/orders"
	pkgerrors "github.com/qwertymuzaffar/retail-backoffice/pkg/errors"
	"github.com/qwertymuzaffar/retail-backoffice/pkg/logger"
)

// CustomerGet loads one customer by id.
func CustomerGet(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := validators.ParsePathUUID(r, "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		found, err := svc.GetCustomer(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, found)
	}
}

// CustomerLookup resolves a customer by email query parameter.
func CustomerLookup(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := validators.SanitizeString(r.URL.Query().Get("email"), 255)
		if email == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "email query parameter is required"))
			return
		}

		found, err := svc.LookupByEmail(r.Context(), email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, found)
	}
}

// CustomerOrders lists a customer's order headers.
func CustomerOrders(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := validators.ParsePathUUID(r, "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.CustomerOrders(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, ordersvc.NewOrderDTOs(rows))
	}
}
