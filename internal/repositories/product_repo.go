package repositories

import (
	"errors"

	"productstore/internal/models"
)

// ErrNotFound is returned when no product matches the requested ID.
var ErrNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	All() ([]models.Product, error)
	FindByID(id uint) (*models.Product, error)
	FindByName(name string) ([]models.Product, error)
	FindByCategory(category models.Category) ([]models.Product, error)
	FindByAvailability(available bool) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
}
