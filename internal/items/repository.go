package items

import (
	"context"
	"errors"

	"github.com/stockroomhq/stockroom-backend/internal/repo"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists items through GORM.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts a new item row; the store assigns id and created_at.
func (r *Repository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	if err := r.DB(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// FindByID loads the item, returning nil (not an error) when no row matches.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Item, error) {
	var item models.Item
	err := r.DB(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// List returns every item row. No ordering is guaranteed.
func (r *Repository) List(ctx context.Context) ([]models.Item, error) {
	var rows []models.Item
	if err := r.DB(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateColumns writes only the provided columns in a single UPDATE with a
// RETURNING clause and reports whether a row matched the id.
func (r *Repository) UpdateColumns(ctx context.Context, id int64, columns map[string]any) (*models.Item, bool, error) {
	var item models.Item
	tx := r.DB(ctx).
		Model(&item).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(columns)
	if tx.Error != nil {
		return nil, false, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, false, nil
	}
	return &item, true, nil
}

// Delete removes the row matching id. Deleting a missing id is a no-op.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.DB(ctx).Where("id = ?", id).Delete(&models.Item{}).Error
}
