package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/qwertymuzaffar/retail-backoffice/api/responses"
	"github.com/qwertymuzaffar/retail-backoffice/api/validators"
	ordersvc "github.com/qwertymuzaffar/retail-backoffice/internal/orders"
	storesvc "github.com/qwertymuzaffar/retail-backoffice/internal/stores"
	pkgerrors "github.com/qwertymuzaffar/retail-backoffice/pkg/errors"
	"github.com/qwertymuzaffar/retail-backoffice/pkg/logger"
)

// StoreCreate registers a new store.
func StoreCreate(svc storesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		var payload createStoreRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateStore(r.Context(), storesvc.CreateStoreInput{
			Name:    validators.SanitizeString(payload.Name, 255),
			Address: validators.SanitizeString(payload.Address, 500),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// StoreValidate reports whether a store id resolves to a row.
func StoreValidate(svc storesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := validators.ParsePathUUID(r, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ValidateStore(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// StoreList returns every store.
func StoreList(svc storesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.ListStores(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// StoreSearch finds stores by name fragment.
func StoreSearch(svc storesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.SearchStores(r.Context(), chi.URLParam(r, "name"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// StorePlaceOrder places an order against a store's inventory.
func StorePlaceOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		var payload placeOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		placed, err := svc.PlaceOrder(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithOrderID(ctx, placed.ID.String())
			logg.Info(ctx, "order placed")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, placed)
	}
}

type createStoreRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
}

type placeOrderRequest struct {
	CustomerName  string                  `json:"customer_name" validate:"required"`
	CustomerEmail string                  `json:"customer_email" validate:"required,email"`
	CustomerPhone string                  `json:"customer_phone" validate:"required"`
	StoreID       string                  `json:"store_id" validate:"required"`
	TotalPrice    string                  `json:"total_price" validate:"required"`
	Purchases     []placeOrderLineRequest `json:"purchases"`
}

type placeOrderLineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

func (req placeOrderRequest) toInput() (ordersvc.PlaceOrderInput, error) {
	storeID, err := uuid.Parse(req.StoreID)
	if err != nil {
		return ordersvc.PlaceOrderInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid store id")
	}
	total, err := decimal.NewFromString(req.TotalPrice)
	if err != nil {
		return ordersvc.PlaceOrderInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid total price")
	}

	lines := make([]ordersvc.OrderLineInput, 0, len(req.Purchases))
	for _, purchase := range req.Purchases {
		productID, err := uuid.Parse(purchase.ProductID)
		if err != nil {
			return ordersvc.PlaceOrderInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id")
		}
		lines = append(lines, ordersvc.OrderLineInput{
			ProductID: productID,
			Quantity:  purchase.Quantity,
		})
	}

	return ordersvc.PlaceOrderInput{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		StoreID:       storeID,
		TotalPrice:    total,
		Lines:         lines,
	}, nil
}
