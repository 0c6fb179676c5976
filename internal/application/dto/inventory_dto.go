package dto

import "time"

// RegisterMovementRequest body para POST /api/inventory/movements.
// Location vacío usa la ubicación por defecto ("main").
type RegisterMovementRequest struct {
	ProductID   string  `json:"product_id"`
	Location    string  `json:"location,omitempty"`
	Type        string  `json:"type"` // in, out, adjust
	Quantity    int64   `json:"quantity"`
	ReferenceID *string `json:"reference_id,omitempty"`
	Notes       string  `json:"notes,omitempty"`
}

// StockMovementResponse representación de un movimiento (inmutable).
type StockMovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	Type        string    `json:"type"`
	Quantity    int64     `json:"quantity"`
	ReferenceID *string   `json:"reference_id,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// StockLevelResponse representación de un nivel de stock.
type StockLevelResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Location  string    `json:"location"`
	Quantity  int64     `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LowStockAlertDTO producto con stock agregado en o bajo su umbral mínimo.
type LowStockAlertDTO struct {
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	MinStock     int64  `json:"min_stock"`
	CurrentStock int64  `json:"current_stock"`
}

// LowStockAlertsResponse listado de alertas de stock bajo.
type LowStockAlertsResponse struct {
	Alerts []LowStockAlertDTO `json:"alerts"`
	Count  int                `json:"count"`
}
