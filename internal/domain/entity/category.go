package entity

import "time"

// Category representa una categoría del catálogo (árbol: ParentID opcional).
type Category struct {
	ID          string
	Name        string
	Description string
	ParentID    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
