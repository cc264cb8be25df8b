package product

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jcastellanos/pos-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testSchema = `
CREATE TABLE products (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	description TEXT,
	price NUMERIC NOT NULL,
	stock_quantity INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME,
	updated_at DATETIME
);
CREATE UNIQUE INDEX idx_products_name_lower ON products (LOWER(name));
`

// newTestDB opens an isolated in-memory sqlite database seeded with the
// products schema. cache=shared keeps the database alive across the pooled
// connections gorm opens.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, gdb.Exec(testSchema).Error)

	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

func seedProduct(t *testing.T, gdb *gorm.DB, name, price string, stock int) *models.Product {
	t.Helper()

	p := &models.Product{
		Name:          name,
		Price:         mustDecimal(t, price),
		StockQuantity: stock,
	}
	require.NoError(t, gdb.Create(p).Error)
	return p
}

func seedModel(name, price string, stock int) *models.Product {
	return &models.Product{
		Name:          name,
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
	}
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
