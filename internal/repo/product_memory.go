package repo

import (
	"strings"
	"sync"

	"github.com/Myseie/ShopInventory/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of
// ProductRepository. It guards its slice with a mutex: besides backing the
// handler tests it serves live traffic when no database is configured, and
// the host runs requests concurrently.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
	nextID   int
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: []models.Product{},
		nextID:   1,
	}
}

// matchesFilter mirrors the ILIKE semantics of the Postgres repository:
// case-insensitive substring match on name or category.
func matchesFilter(p models.Product, pf ProductFilter) bool {
	if pf.Search == "" {
		return true
	}
	search := strings.ToLower(pf.Search)
	return strings.Contains(strings.ToLower(p.Name), search) ||
		strings.Contains(strings.ToLower(p.Category), search)
}

func (r *InMemoryProductRepository) Filter(pf ProductFilter) ([]models.Product, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := []models.Product{}
	for _, p := range r.products {
		if matchesFilter(p, pf) {
			filtered = append(filtered, p)
		}
	}

	start := clamp((pf.page()-1)*PageSize, 0, len(filtered))
	end := clamp(start+PageSize, start, len(filtered))

	return filtered[start:end], len(filtered), nil
}

// Create adds a new product to the repository.
func (r *InMemoryProductRepository) Create(product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = r.nextID
	r.nextID++
	r.products = append(r.products, product)
	return product, nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(id int) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// GetByName retrieves a product by its exact name.
func (r *InMemoryProductRepository) GetByName(name string) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.Name == name {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Update replaces an existing product. The record may have been deleted
// since the caller read it, in which case the conflict is reported.
func (r *InMemoryProductRepository) Update(product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == product.ID {
			r.products[i] = product
			return product, nil
		}
	}
	return models.Product{}, ErrConcurrentUpdate
}

// Delete removes a product from the repository by its ID.
func (r *InMemoryProductRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = []models.Product{}
	r.nextID = 1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
