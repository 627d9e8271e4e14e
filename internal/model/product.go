package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRecord is one row of the products table as read by a report run.
type ProductRecord struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description *string         `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}
