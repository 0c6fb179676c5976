package repository

import (
	"context"

	"github.com/jhoicas/Vestuario-api/internal/domain/entity"
)

// StockLevelFilter filtros para listar niveles de stock.
type StockLevelFilter struct {
	ProductID    string
	Location     string
	LowStockOnly bool // solo filas con quantity <= min_stock del producto
	Limit        int
	Offset       int
}

// LowStockAlert producto cuyo stock agregado (todas las ubicaciones) está en o
// bajo su umbral mínimo.
type LowStockAlert struct {
	ProductID    string
	ProductName  string
	MinStock     int64
	CurrentStock int64
}

// StockLevelRepository define el puerto para consultar/actualizar el nivel de
// stock por producto+ubicación. Dentro de transacciones se usa GetForUpdate
// para que la verificación de no-negatividad no lea datos viejos.
type StockLevelRepository interface {
	Get(productID, location string) (*entity.StockLevel, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE). Si el par nunca se ha
	// visto devuelve un nivel con Quantity = 0 listo para Upsert.
	GetForUpdate(productID, location string) (*entity.StockLevel, error)
	Upsert(level *entity.StockLevel) error
	List(ctx context.Context, filter StockLevelFilter) ([]*entity.StockLevel, error)

	// LowStockAlerts devuelve los productos con stock agregado <= min_stock,
	// incluidos los que aún no tienen filas de stock (agregado 0).
	LowStockAlerts(ctx context.Context) ([]LowStockAlert, error)
}
