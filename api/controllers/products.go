package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/qwertymuzaffar/retail-backoffice/api/responses"
	"github.com/qwertymuzaffar/retail-backoffice/api/validators"
	productsvc "github.com/qwertymuzaffar/retail-backoffice/internal/products"
	pkgerrors "github.com/qwertymuzaffar/retail-backoffice/pkg/errors"
	"github.com/qwertymuzaffar/retail-backoffice/pkg/logger"
)

// ProductCreate adds a product to the catalog.
func ProductCreate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		price, err := payload.parsePrice()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateProduct(r.Context(), productsvc.CreateProductInput{
			Name:     payload.Name,
			Category: payload.Category,
			Price:    price,
			SKU:      payload.SKU,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// ProductUpdate fully overwrites a catalog row.
func ProductUpdate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParsePathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		price, err := payload.parsePrice()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateProduct(r.Context(), productID, productsvc.UpdateProductInput{
			Name:     payload.Name,
			Category: payload.Category,
			Price:    price,
			SKU:      payload.SKU,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// ProductGet loads one catalog row.
func ProductGet(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParsePathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		found, err := svc.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, found)
	}
}

// ProductList returns catalog rows, optionally narrowed by query filters.
func ProductList(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		minPrice, err := validators.ParseQueryDecimal(r, "min_price")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		maxPrice, err := validators.ParseQueryDecimal(r, "max_price")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := productsvc.ListFilter{
			SKU:       validators.SanitizeString(r.URL.Query().Get("sku"), 100),
			Category:  validators.SanitizeString(r.URL.Query().Get("category"), 100),
			NameQuery: validators.SanitizeString(r.URL.Query().Get("q"), 255),
			MinPrice:  minPrice,
			MaxPrice:  maxPrice,
		}

		rows, err := svc.ListProducts(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

type productRequest struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"required"`
	Price    string `json:"price" validate:"required"`
	SKU      string `json:"sku" validate:"required"`
}

func (req productRequest) parsePrice() (decimal.Decimal, error) {
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return decimal.Decimal{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
	}
	return price, nil
}
