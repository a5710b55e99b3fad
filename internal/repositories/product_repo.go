package repositories

import (
	"errors"

	"tienda/internal/models"
)

// ProductFilter narrows a product listing. Nil fields impose no
// constraint; set fields are AND-combined, bounds are inclusive.
type ProductFilter struct {
	Name         *string
	MinPrice     *float64
	MaxPrice     *float64
	MinPriceSale *float64
	MaxPriceSale *float64
	Stock        *int
	MinStock     *int
	MaxStock     *int
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// List returns one page of matching products, ordered by ascending id,
	// together with the total number of matches.
	List(filter ProductFilter, offset, limit int) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	ExistsByID(id uint) (bool, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
}

// ErrProductNotFound is returned by GetByID/Update/Delete when no row
// matches the given id.
var ErrProductNotFound = errors.New("product not found")
