package items

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newItemsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// One named in-memory database per test so rows never leak between tests.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Item{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

func mustCreateItem(t *testing.T, db *gorm.DB, name string, description *string, quantity int) *models.Item {
	t.Helper()
	item := &models.Item{
		Name:        name,
		Description: description,
		Quantity:    quantity,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("create item: %v", err)
	}
	return item
}

func stringPtr(v string) *string {
	return &v
}

func intPtr(v int) *int {
	return &v
}
