package items

import (
	"time"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
)

// ItemDTO is the item payload returned to clients. Description stays a
// pointer so a NULL column serializes as null rather than "".
type ItemDTO struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewItemDTO builds a DTO from the persisted model.
func NewItemDTO(item *models.Item) *ItemDTO {
	return &ItemDTO{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Quantity:    item.Quantity,
		CreatedAt:   item.CreatedAt,
	}
}

// NewItemDTOs maps a slice of rows into DTOs.
func NewItemDTOs(rows []models.Item) []ItemDTO {
	dtos := make([]ItemDTO, len(rows))
	for i := range rows {
		dtos[i] = *NewItemDTO(&rows[i])
	}
	return dtos
}
