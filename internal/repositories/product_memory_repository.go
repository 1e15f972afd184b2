package repositories

import (
	"sort"
	"sync"

	"productstore/internal/models"
)

// MemoryProductRepository is an in-memory implementation of
// ProductRepository. It backs the "memory" store driver and keeps tests
// independent of a database.
type MemoryProductRepository struct {
	products map[uint]models.Product
	nextID   uint
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[uint]models.Product),
		nextID:   1,
	}
}

// All returns every product ordered by ID.
func (r *MemoryProductRepository) All() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(models.Product) bool { return true }), nil
}

// FindByID returns a product by its ID.
func (r *MemoryProductRepository) FindByID(id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &product, nil
}

// FindByName returns all products whose name matches exactly.
func (r *MemoryProductRepository) FindByName(name string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(p models.Product) bool { return p.Name == name }), nil
}

// FindByCategory returns all products in the given category.
func (r *MemoryProductRepository) FindByCategory(category models.Category) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(p models.Product) bool { return p.Category == category }), nil
}

// FindByAvailability returns all products with the given availability flag.
func (r *MemoryProductRepository) FindByAvailability(available bool) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(p models.Product) bool { return p.Available == available }), nil
}

// Create adds a new product and assigns the next ID.
func (r *MemoryProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = r.nextID
	r.nextID++
	r.products[product.ID] = *product
	return nil
}

// Update replaces an existing product wholesale.
func (r *MemoryProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return ErrNotFound
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID; absent IDs are a no-op.
func (r *MemoryProductRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.products, id)
	return nil
}

// collect gathers products matching the predicate, ordered by ID. Caller
// must hold at least a read lock.
func (r *MemoryProductRepository) collect(match func(models.Product) bool) []models.Product {
	products := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if match(p) {
			products = append(products, p)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products
}
