package repo

import "github.com/Myseie/ShopInventory/internal/models"

// PageSize is the fixed number of products per list page.
const PageSize = 10

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	Create(product models.Product) (models.Product, error)
	GetByID(id int) (models.Product, error)
	GetByName(name string) (models.Product, error)
	Update(product models.Product) (models.Product, error)
	Delete(id int) error
	Filter(pf ProductFilter) ([]models.Product, int, error)
}

// ProductFilter selects a single page of products whose name or category
// contains Search. An empty Search matches everything. Pages are 1-indexed;
// values below 1 are treated as page 1.
type ProductFilter struct {
	Search string
	Page   int
}

func (pf ProductFilter) page() int {
	if pf.Page < 1 {
		return 1
	}
	return pf.Page
}
