package repository

import "github.com/jhoicas/Vestuario-api/internal/domain/entity"

// ProductFilter filtros de listado de productos.
type ProductFilter struct {
	CategoryID string
	Search     string // búsqueda por nombre (ilike)
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(filter ProductFilter) ([]*entity.Product, error)
	Delete(id string) error
}
