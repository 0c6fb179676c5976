package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Product representa una prenda o SKU del catálogo.
// El stock no vive aquí: se maneja por ubicación en StockLevel y se modifica
// exclusivamente vía movimientos.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	Barcode     string
	CategoryID  string
	CostPrice   decimal.Decimal
	SalePrice   decimal.Decimal
	MinStock    int64 // umbral para alertas de stock bajo (>= 0)
	ImageURL    string
	Attributes  json.RawMessage // talla, color, material, etc.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
