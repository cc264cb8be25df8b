package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the persisted catalog record. Name uniqueness is
// case-insensitive and enforced by a unique index on LOWER(name).
type Product struct {
	ID            int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Name          string          `gorm:"column:name;not null"`
	Description   *string         `gorm:"column:description"`
	Price         decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	StockQuantity int             `gorm:"column:stock_quantity;not null;default:0"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
