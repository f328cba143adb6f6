package cart

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/stridekart/backend/pkg/db/models"
)

// Each test gets its own named in-memory database so pooled connections see
// the same data without leaking state across tests.
func testDSN() string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(testDSN()), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = conn.AutoMigrate(
		&models.Account{},
		&models.CustomerProfile{},
		&models.VendorProfile{},
		&models.Size{},
		&models.Color{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Cart{},
		&models.CartItem{},
		&models.WishlistItem{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}
