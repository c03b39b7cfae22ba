package items

import (
	"context"
	"fmt"

	"github.com/stockroomhq/stockroom-backend/pkg/db"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/types"
)

// Service exposes item CRUD operations.
type Service interface {
	CreateItem(ctx context.Context, input CreateItemInput) (*ItemDTO, error)
	GetItem(ctx context.Context, id int64) (*ItemDTO, error)
	ListItems(ctx context.Context) ([]ItemDTO, error)
	UpdateItem(ctx context.Context, id int64, input UpdateItemInput) (*ItemDTO, error)
	DeleteItem(ctx context.Context, id int64) error
}

// CreateItemInput holds the validated payload to create an item. Description
// is nullable but must have been explicitly present in the request.
type CreateItemInput struct {
	Name        string
	Description *string
	Quantity    int
}

// UpdateItemInput holds optional mutation values for an item. Nil pointers
// mean "leave unchanged"; Description keeps the set-to-null case distinct.
type UpdateItemInput struct {
	Name        *string
	Description types.Optional[string]
	Quantity    *int
}

type service struct {
	repo *Repository
}

// NewService constructs an item service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("item repository required")
	}
	return &service{repo: repo}, nil
}

// CreateItem inserts the item; the store assigns id and created_at.
func (s *service) CreateItem(ctx context.Context, input CreateItemInput) (*ItemDTO, error) {
	item := &models.Item{
		Name:        input.Name,
		Description: input.Description,
		Quantity:    input.Quantity,
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err,
				fmt.Sprintf("item name %q already exists", input.Name))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert item")
	}
	return NewItemDTO(created), nil
}

// GetItem returns the item or nil when the id does not exist. A missing row
// is a valid result, not an error.
func (s *service) GetItem(ctx context.Context, id int64) (*ItemDTO, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: select item")
	}
	if item == nil {
		return nil, nil
	}
	return NewItemDTO(item), nil
}

// ListItems returns every item.
func (s *service) ListItems(ctx context.Context) ([]ItemDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list items")
	}
	return NewItemDTOs(rows), nil
}

// UpdateItem applies a partial update. Only fields explicitly present in the
// input are written; created_at is never part of the writable set. When no
// updatable field is present the row is read and returned unchanged so a
// no-op UPDATE is never issued, while a missing id still reports not-found.
func (s *service) UpdateItem(ctx context.Context, id int64, input UpdateItemInput) (*ItemDTO, error) {
	columns := map[string]any{}
	if input.Name != nil {
		columns["name"] = *input.Name
	}
	if input.Description.Set {
		if input.Description.Valid {
			columns["description"] = input.Description.Value
		} else {
			columns["description"] = nil
		}
	}
	if input.Quantity != nil {
		columns["quantity"] = *input.Quantity
	}

	if len(columns) == 0 {
		item, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: select item")
		}
		if item == nil {
			return nil, notFound(id)
		}
		return NewItemDTO(item), nil
	}

	item, found, err := s.repo.UpdateColumns(ctx, id, columns)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err,
				fmt.Sprintf("item name already exists (id=%d)", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update item")
	}
	if !found {
		return nil, notFound(id)
	}
	return NewItemDTO(item), nil
}

// DeleteItem removes the item if present. Deleting a missing id succeeds.
func (s *service) DeleteItem(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete item")
	}
	return nil
}

func notFound(id int64) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("item with id %d not found", id))
}
