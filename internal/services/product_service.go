package services

import (
	"log"

	"productstore/internal/models"
	"productstore/internal/repositories"
)

// EventPublisher publishes product lifecycle events to a message broker.
type EventPublisher interface {
	PublishProductEvent(action string, event map[string]interface{}) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
}

// NewProductService creates a new ProductService. The publisher may be nil,
// in which case lifecycle events are disabled.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.All()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	return s.repo.FindByID(id)
}

// GetProductsByName retrieves all products whose name matches exactly.
func (s *ProductService) GetProductsByName(name string) ([]models.Product, error) {
	return s.repo.FindByName(name)
}

// GetProductsByCategory retrieves all products in the given category.
func (s *ProductService) GetProductsByCategory(category models.Category) ([]models.Product, error) {
	return s.repo.FindByCategory(category)
}

// GetProductsByAvailability retrieves all products with the given
// availability flag.
func (s *ProductService) GetProductsByAvailability(available bool) ([]models.Product, error) {
	return s.repo.FindByAvailability(available)
}

// CreateProduct validates the payload and inserts a new product. The store
// assigns the ID.
func (s *ProductService) CreateProduct(payload models.ProductPayload) (*models.Product, error) {
	product, err := models.NewProduct(payload)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	s.publishEvent("created", productEvent(product))
	return product, nil
}

// UpdateProduct replaces the mutable fields of an existing product with the
// payload, re-running the same validation as create. Returns
// repositories.ErrNotFound when the ID has no row.
func (s *ProductService) UpdateProduct(id uint, payload models.ProductPayload) (*models.Product, error) {
	existing, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	updated, err := models.NewProduct(payload)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(updated); err != nil {
		return nil, err
	}
	s.publishEvent("updated", productEvent(updated))
	return updated, nil
}

// DeleteProduct deletes a product by its ID. Deleting an absent ID is not
// an error.
func (s *ProductService) DeleteProduct(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publishEvent("deleted", map[string]interface{}{"id": id})
	return nil
}

// publishEvent emits a lifecycle event when a publisher is configured.
// Broker failures are logged and never surfaced to the caller.
func (s *ProductService) publishEvent(action string, event map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishProductEvent(action, event); err != nil {
		log.Printf("Failed to publish product %s event: %v", action, err)
	}
}

func productEvent(p *models.Product) map[string]interface{} {
	return map[string]interface{}{
		"id":        p.ID,
		"name":      p.Name,
		"price":     p.Price.String(),
		"available": p.Available,
		"category":  string(p.Category),
	}
}
