package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"productstore/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// All retrieves every product from the database in the store's natural order.
// Finders return a non-nil slice so an empty result serializes as [].
func (r *GORMProductRepository) All() ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := r.db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// FindByID retrieves a single product by its ID.
func (r *GORMProductRepository) FindByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// FindByName retrieves all products whose name matches exactly.
func (r *GORMProductRepository) FindByName(name string) ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := r.db.Where("name = ?", name).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products by name %q: %w", name, err)
	}
	return products, nil
}

// FindByCategory retrieves all products in the given category.
func (r *GORMProductRepository) FindByCategory(category models.Category) ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := r.db.Where("category = ?", category).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products by category %s: %w", category, err)
	}
	return products, nil
}

// FindByAvailability retrieves all products with the given availability flag.
func (r *GORMProductRepository) FindByAvailability(available bool) ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := r.db.Where("available = ?", available).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products by availability %t: %w", available, err)
	}
	return products, nil
}

// Create inserts a new product row. The store assigns the ID.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update replaces all fields of an existing product row.
func (r *GORMProductRepository) Update(product *models.Product) error {
	// Save won't return ErrRecordNotFound for a missing row, so probe
	// for existence first to keep Save from inserting a fresh row.
	var existing models.Product
	if err := r.db.First(&existing, product.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update product %d: %w", product.ID, err)
	}
	if err := r.db.Save(product).Error; err != nil {
		return fmt.Errorf("failed to update product %d: %w", product.ID, err)
	}
	return nil
}

// Delete removes the product row matching id. Deleting an absent id is a
// no-op, which makes DELETE idempotent at the HTTP layer.
func (r *GORMProductRepository) Delete(id uint) error {
	if err := r.db.Delete(&models.Product{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	return nil
}
