package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/qwertymuzaffar/retail-backoffice/api/responses"
	"github.com/qwertymuzaffar/retail-backoffice/api/validators"
	inventorysvc "github.com/qwertymuzaffar/retail-backoffice/internal/inventory"
	pkgerrors "github.com/qwertymuzaffar/retail-backoffice/pkg/errors"
	"github.com/qwertymuzaffar/retail-backoffice/pkg/logger"
)

// InventoryUpsert overwrites a product and optionally its stock at one store.
func InventoryUpsert(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		var payload upsertInventoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Upsert(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// InventoryCreate inserts the first stock row for a (product, store) pair.
func InventoryCreate(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		var payload createInventoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateInventory(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// InventoryByStore lists the products stocked at a store.
func InventoryByStore(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := validators.ParsePathUUID(r, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.ProductsByStore(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// InventoryFilter narrows a store's products by category and name. The
// literal path value "null" disables a dimension.
func InventoryFilter(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := validators.ParsePathUUID(r, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category := chi.URLParam(r, "category")
		name := chi.URLParam(r, "name")

		rows, err := svc.FilterProducts(r.Context(), storeID, category, name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// InventorySearch finds in-store products by name fragment.
func InventorySearch(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := validators.ParsePathUUID(r, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.SearchProducts(r.Context(), storeID, chi.URLParam(r, "name"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// InventoryRemoveProduct deletes a product and its stock rows.
func InventoryRemoveProduct(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParsePathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RemoveProduct(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// InventoryValidateStock reports whether a quantity can be fulfilled.
func InventoryValidateStock(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quantity, err := validators.ParsePathInt(r, "quantity", 1)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		storeID, err := validators.ParsePathUUID(r, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := validators.ParsePathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ValidateStock(r.Context(), productID, storeID, quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

type upsertInventoryRequest struct {
	ProductID string                 `json:"product_id" validate:"required,uuid4"`
	Name      string                 `json:"name" validate:"required"`
	Category  string                 `json:"category" validate:"required"`
	Price     string                 `json:"price" validate:"required"`
	SKU       string                 `json:"sku" validate:"required"`
	Inventory *upsertStockSubRequest `json:"inventory,omitempty"`
}

type upsertStockSubRequest struct {
	StoreID    string `json:"store_id" validate:"required,uuid4"`
	StockLevel int    `json:"stock_level" validate:"min=0"`
}

func (req upsertInventoryRequest) toInput() (inventorysvc.UpsertInput, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return inventorysvc.UpsertInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id")
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return inventorysvc.UpsertInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
	}

	input := inventorysvc.UpsertInput{
		ProductID: productID,
		Name:      req.Name,
		Category:  req.Category,
		Price:     price,
		SKU:       req.SKU,
	}
	if req.Inventory != nil {
		storeID, err := uuid.Parse(req.Inventory.StoreID)
		if err != nil {
			return inventorysvc.UpsertInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid store id")
		}
		input.Inventory = &inventorysvc.StockInput{
			StoreID:    storeID,
			StockLevel: req.Inventory.StockLevel,
		}
	}
	return input, nil
}

type createInventoryRequest struct {
	ProductID  string `json:"product_id" validate:"required,uuid4"`
	StoreID    string `json:"store_id" validate:"required,uuid4"`
	StockLevel int    `json:"stock_level" validate:"min=0"`
}

func (req createInventoryRequest) toInput() (inventorysvc.CreateInput, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return inventorysvc.CreateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id")
	}
	storeID, err := uuid.Parse(req.StoreID)
	if err != nil {
		return inventorysvc.CreateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid store id")
	}
	return inventorysvc.CreateInput{
		ProductID:  productID,
		StoreID:    storeID,
		StockLevel: req.StockLevel,
	}, nil
}
