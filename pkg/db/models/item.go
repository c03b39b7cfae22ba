package models

import "time"

// Item is an inventory record. Description is nullable and an empty string
// stays distinct from NULL. CreatedAt is written once by the store and never
// touched by updates.
type Item struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string    `gorm:"column:name;not null;uniqueIndex:items_name_key"`
	Description *string   `gorm:"column:description"`
	Quantity    int       `gorm:"column:quantity;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName pins the table name used by the migrations.
func (Item) TableName() string {
	return "items"
}
