package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Vestuario-api/internal/domain/entity"
	"github.com/jhoicas/Vestuario-api/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo implementación del puerto StockLevelRepository sobre PostgreSQL.
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador de niveles de stock. Pasar pool o tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

// Get obtiene el nivel de stock de un producto en una ubicación. nil si no existe fila.
func (r *StockLevelRepo) Get(productID, location string) (*entity.StockLevel, error) {
	query := `
		SELECT id, product_id, location, quantity, created_at, updated_at
		FROM stock_levels WHERE product_id = $1 AND location = $2`
	var l entity.StockLevel
	err := r.q.QueryRow(context.Background(), query, productID, location).Scan(
		&l.ID, &l.ProductID, &l.Location, &l.Quantity, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock level: %w", err)
	}
	return &l, nil
}

// GetForUpdate bloquea la fila del nivel (SELECT FOR UPDATE) para serializar
// movimientos concurrentes sobre el mismo par producto+ubicación. Si la fila
// no existe devuelve un nivel nuevo con Quantity = 0 y un ID ya asignado,
// listo para el primer Upsert (creación perezosa).
func (r *StockLevelRepo) GetForUpdate(productID, location string) (*entity.StockLevel, error) {
	query := `
		SELECT id, product_id, location, quantity, created_at, updated_at
		FROM stock_levels WHERE product_id = $1 AND location = $2
		FOR UPDATE`
	var l entity.StockLevel
	err := r.q.QueryRow(context.Background(), query, productID, location).Scan(
		&l.ID, &l.ProductID, &l.Location, &l.Quantity, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockLevel{
				ID:        uuid.New().String(),
				ProductID: productID,
				Location:  location,
				Quantity:  0,
			}, nil
		}
		return nil, fmt.Errorf("get stock level for update: %w", err)
	}
	return &l, nil
}

// Upsert crea o actualiza el nivel para el par (producto, ubicación).
func (r *StockLevelRepo) Upsert(level *entity.StockLevel) error {
	query := `
		INSERT INTO stock_levels (id, product_id, location, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		ON CONFLICT (product_id, location)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		level.ID, level.ProductID, level.Location, level.Quantity,
	)
	if err != nil {
		return fmt.Errorf("upsert stock level: %w", err)
	}
	return nil
}

// List lista niveles de stock con filtros opcionales. LowStockOnly cruza con
// el min_stock del producto.
func (r *StockLevelRepo) List(ctx context.Context, filter repository.StockLevelFilter) ([]*entity.StockLevel, error) {
	query := `
		SELECT s.id, s.product_id, s.location, s.quantity, s.created_at, s.updated_at
		FROM stock_levels s
		JOIN products p ON p.id = s.product_id
		WHERE 1=1`
	args := []any{}
	n := 0
	if filter.ProductID != "" {
		n++
		query += fmt.Sprintf(" AND s.product_id = $%d", n)
		args = append(args, filter.ProductID)
	}
	if filter.Location != "" {
		n++
		query += fmt.Sprintf(" AND s.location = $%d", n)
		args = append(args, filter.Location)
	}
	if filter.LowStockOnly {
		query += " AND s.quantity <= p.min_stock"
	}
	query += fmt.Sprintf(" ORDER BY s.updated_at DESC LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLevel
	for rows.Next() {
		var l entity.StockLevel
		if err := rows.Scan(&l.ID, &l.ProductID, &l.Location, &l.Quantity, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// LowStockAlerts devuelve los productos cuyo stock agregado (todas las
// ubicaciones) está en o bajo su min_stock. El LEFT JOIN incluye productos
// sin filas de stock (agregado 0). Ordena por déficit descendente.
func (r *StockLevelRepo) LowStockAlerts(ctx context.Context) ([]repository.LowStockAlert, error) {
	query := `
		SELECT
			p.id,
			p.name,
			p.min_stock,
			COALESCE(SUM(s.quantity), 0) AS current_stock
		FROM products p
		LEFT JOIN stock_levels s ON s.product_id = p.id
		GROUP BY p.id, p.name, p.min_stock
		HAVING COALESCE(SUM(s.quantity), 0) <= p.min_stock
		ORDER BY (p.min_stock - COALESCE(SUM(s.quantity), 0)) DESC, p.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("low stock alerts: %w", err)
	}
	defer rows.Close()
	var alerts []repository.LowStockAlert
	for rows.Next() {
		var a repository.LowStockAlert
		if err := rows.Scan(&a.ProductID, &a.ProductName, &a.MinStock, &a.CurrentStock); err != nil {
			return nil, fmt.Errorf("scan low stock alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}
