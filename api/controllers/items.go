package controllers

import (
	"net/http"
	"strings"

	"github.com/stockroomhq/stockroom-backend/api/responses"
	"github.com/stockroomhq/stockroom-backend/api/validators"
	"github.com/stockroomhq/stockroom-backend/internal/items"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
	"github.com/stockroomhq/stockroom-backend/pkg/types"
)

const itemIDParam = "itemId"

type createItemRequest struct {
	Name        string                 `json:"name" validate:"required"`
	Description types.Optional[string] `json:"description"`
	Quantity    *int                   `json:"quantity" validate:"omitempty,min=0"`
}

// toInput covers only what the validate tags cannot: a whitespace-only name
// and the tri-state description, which must be explicitly present.
func (r createItemRequest) toInput() (items.CreateItemInput, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return items.CreateItemInput{}, pkgerrors.New(pkgerrors.CodeValidation, "name is required").WithDetails(map[string]any{"field": "name"})
	}
	if !r.Description.Set {
		return items.CreateItemInput{}, pkgerrors.New(pkgerrors.CodeValidation, "description must be provided (string or null)").WithDetails(map[string]any{"field": "description"})
	}

	quantity := 0
	if r.Quantity != nil {
		quantity = *r.Quantity
	}

	return items.CreateItemInput{
		Name:        name,
		Description: r.Description.Ptr(),
		Quantity:    quantity,
	}, nil
}

type updateItemRequest struct {
	Name        types.Optional[string] `json:"name"`
	Description types.Optional[string] `json:"description"`
	Quantity    types.Optional[int]    `json:"quantity"`
}

// toInput checks every rule by hand: tri-state fields cannot carry
// validate tags, the null/absent distinction lives on the Optional.
func (r updateItemRequest) toInput() (items.UpdateItemInput, error) {
	input := items.UpdateItemInput{Description: r.Description}

	if r.Name.Set {
		if !r.Name.Valid {
			return items.UpdateItemInput{}, pkgerrors.New(pkgerrors.CodeValidation, "name must not be null").WithDetails(map[string]any{"field": "name"})
		}
		name := strings.TrimSpace(r.Name.Value)
		if name == "" {
			return items.UpdateItemInput{}, pkgerrors.New(pkgerrors.CodeValidation, "name must not be empty").WithDetails(map[string]any{"field": "name"})
		}
		input.Name = &name
	}

	if r.Quantity.Set {
		if !r.Quantity.Valid {
			return items.UpdateItemInput{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be null").WithDetails(map[string]any{"field": "quantity"})
		}
		if r.Quantity.Value < 0 {
			return items.UpdateItemInput{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative").WithDetails(map[string]any{"field": "quantity"})
		}
		quantity := r.Quantity.Value
		input.Quantity = &quantity
	}

	return input, nil
}

// CreateItem handles POST /api/v1/items.
func CreateItem(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "items service unavailable"))
			return
		}

		var payload createItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateItem(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// ListItems handles GET /api/v1/items.
func ListItems(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "items service unavailable"))
			return
		}

		list, err := svc.ListItems(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if list == nil {
			list = []items.ItemDTO{}
		}

		responses.WriteSuccess(w, list)
	}
}

// GetItemByID handles GET /api/v1/items/{itemId}. A missing item responds
// 200 with a null data field, not 404.
func GetItemByID(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "items service unavailable"))
			return
		}

		id, err := validators.ParsePathID(r, itemIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.GetItem(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

// UpdateItem handles PATCH /api/v1/items/{itemId}.
func UpdateItem(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "items service unavailable"))
			return
		}

		id, err := validators.ParsePathID(r, itemIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateItem(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// DeleteItem handles DELETE /api/v1/items/{itemId}. Deleting a missing item
// still responds 204.
func DeleteItem(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "items service unavailable"))
			return
		}

		id, err := validators.ParsePathID(r, itemIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteItem(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteNoContent(w)
	}
}
