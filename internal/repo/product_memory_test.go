package repo

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/Myseie/ShopInventory/internal/models"
)

func TestCreateAssignsSequentialIDs(t *testing.T) {
	r := NewInMemoryProductRepository()

	first, err := r.Create(models.Product{Name: "Widget", Price: 9.99, Category: "Tools"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.ID != 1 {
		t.Errorf("expected id 1, got %d", first.ID)
	}

	second, _ := r.Create(models.Product{Name: "Gadget", Price: 19.99, Category: "Electronics"})
	if second.ID != 2 {
		t.Errorf("expected id 2, got %d", second.ID)
	}
}

func TestGetByIDReturnsEqualRecord(t *testing.T) {
	r := NewInMemoryProductRepository()

	created, _ := r.Create(models.Product{
		Name:        "Widget",
		Description: "A widget",
		Price:       9.99,
		Category:    "Tools",
		ImagePath:   "/images/abc_widget.png",
	})

	got, err := r.GetByID(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != created {
		t.Errorf("expected %+v, got %+v", created, got)
	}

	if _, err := r.GetByID(99); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestFilterPagination(t *testing.T) {
	r := NewInMemoryProductRepository()
	for i := 1; i <= 25; i++ {
		r.Create(models.Product{Name: fmt.Sprintf("Item %02d", i), Price: 1, Category: "Misc"})
	}

	page1, total, err := r.Filter(ProductFilter{Page: 1})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if total != 25 || len(page1) != PageSize {
		t.Errorf("expected total 25 and a full page, got total=%d len=%d", total, len(page1))
	}

	page3, _, _ := r.Filter(ProductFilter{Page: 3})
	if len(page3) != 5 {
		t.Errorf("expected 5 items on last page, got %d", len(page3))
	}
	if page3[0].Name != "Item 21" {
		t.Errorf("expected pages to tile without overlap, got %q", page3[0].Name)
	}

	beyond, total, _ := r.Filter(ProductFilter{Page: 4})
	if len(beyond) != 0 || total != 25 {
		t.Errorf("expected empty page past the end with total preserved, got len=%d total=%d", len(beyond), total)
	}

	defaulted, _, _ := r.Filter(ProductFilter{Page: 0})
	if len(defaulted) != PageSize || defaulted[0].Name != "Item 01" {
		t.Errorf("expected page<1 to behave as page 1")
	}
}

func TestFilterSearchMatchesNameOrCategory(t *testing.T) {
	r := NewInMemoryProductRepository()
	r.Create(models.Product{Name: "Widget", Price: 1, Category: "Tools"})
	r.Create(models.Product{Name: "Gadget", Price: 1, Category: "Electronics"})

	for _, search := range []string{"Wid", "wid", "WID"} {
		got, total, _ := r.Filter(ProductFilter{Search: search})
		if total != 1 || len(got) != 1 || got[0].Name != "Widget" {
			t.Errorf("search %q: expected Widget only, got %+v", search, got)
		}
	}

	got, _, _ := r.Filter(ProductFilter{Search: "tools"})
	if len(got) != 1 || got[0].Name != "Widget" {
		t.Errorf("expected category match, got %+v", got)
	}

	got, total, _ := r.Filter(ProductFilter{Search: "zzz"})
	if total != 0 || len(got) != 0 {
		t.Errorf("expected no matches, got %+v", got)
	}
}

func TestUpdateAfterDeleteReportsConflict(t *testing.T) {
	r := NewInMemoryProductRepository()
	created, _ := r.Create(models.Product{Name: "Widget", Price: 9.99, Category: "Tools"})

	if err := r.Delete(created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	created.Price = 12
	if _, err := r.Update(created); !errors.Is(err, ErrConcurrentUpdate) {
		t.Errorf("expected ErrConcurrentUpdate, got %v", err)
	}
}

func TestConcurrentWrites(t *testing.T) {
	r := NewInMemoryProductRepository()

	const workers = 10
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			p, err := r.Create(models.Product{
				Name: fmt.Sprintf("Item %d", i), Price: 1, Category: "Misc",
			})
			if err != nil {
				t.Errorf("create: %v", err)
				return
			}
			if _, _, err := r.Filter(ProductFilter{Page: 1}); err != nil {
				t.Errorf("filter: %v", err)
			}
			p.Price = 2
			if _, err := r.Update(p); err != nil {
				t.Errorf("update: %v", err)
			}
		}(i)
	}
	wg.Wait()

	_, total, err := r.Filter(ProductFilter{})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if total != workers {
		t.Errorf("expected %d products after concurrent creates, got %d", workers, total)
	}

	seen := map[int]bool{}
	for id := 1; id <= workers; id++ {
		p, err := r.GetByID(id)
		if err != nil {
			t.Errorf("expected id %d assigned exactly once: %v", id, err)
			continue
		}
		if seen[p.ID] {
			t.Errorf("id %d assigned twice", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestConcurrentUserCreates(t *testing.T) {
	r := NewInMemoryUserRepository()

	const workers = 10
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			if _, err := r.CreateUser(models.User{Username: fmt.Sprintf("user%d", i)}); err != nil {
				t.Errorf("create user: %v", err)
			}
			if _, err := r.GetByUsername(fmt.Sprintf("user%d", i)); err != nil && err != ErrUserNotFound {
				t.Errorf("get user: %v", err)
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		if _, err := r.GetByUsername(fmt.Sprintf("user%d", i)); err != nil {
			t.Errorf("expected user%d present: %v", i, err)
		}
	}
}

func TestDeleteAbsentID(t *testing.T) {
	r := NewInMemoryProductRepository()

	if err := r.Delete(42); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}

	r.Create(models.Product{Name: "Widget", Price: 1, Category: "Tools"})
	if err := r.Delete(1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := r.GetByID(1); !errors.Is(err, ErrProductNotFound) {
		t.Error("expected record gone after delete")
	}
}
