package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Myseie/ShopInventory/internal/imagestore"
	"github.com/Myseie/ShopInventory/internal/repo"
)

// GetProductsHandler godoc
// @Summary List products, filtered and paginated
// @Description Returns one page of products whose name or category contains searchString (all products when empty), 10 per page.
// @Tags products
// @Produce json
// @Param searchString query string false "Substring matched against name and category"
// @Param page query int false "1-indexed page number, defaults to 1"
// @Success 200 {object} ProductsSearchResult
// @Failure 500 {string} string "Internal error"
// @Router /products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := parseInt(q.Get("page"))
	if page < 1 {
		page = 1
	}
	filter := repo.ProductFilter{
		Search: q.Get("searchString"),
		Page:   page,
	}

	products, total, err := productRepo.Filter(filter)
	if err != nil {
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}

	totalPages := (total + repo.PageSize - 1) / repo.PageSize
	resp := ProductsSearchResult{
		Data: make([]ProductResponse, len(products)),
		Meta: Meta{TotalCount: total, Page: page, PageSize: repo.PageSize, TotalPages: totalPages},
	}
	for i, p := range products {
		resp.Data[i] = toProductResponse(p)
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// NewProductFormHandler godoc
// @Summary Empty product form
// @Tags products
// @Produce json
// @Success 200 {object} ProductForm
// @Router /products/create [get]
func NewProductFormHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ProductForm{})
}

// CreateProductHandler godoc
// @Summary Create a product
// @Description Validates the submitted form, stores the optional image, persists the product and redirects to the list.
// @Tags products
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param Name formData string true "Product name"
// @Param Description formData string false "Description"
// @Param Price formData string true "Price"
// @Param Category formData string true "Category"
// @Param imageFile formData file false "Product image"
// @Success 303 "Redirects to /products"
// @Failure 400 {object} ValidationFailure
// @Failure 500 {string} string "Internal error"
// @Router /products/create [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	form, file, filename, err := parseProductForm(w, r)
	if err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if file != nil {
		defer file.Close()
	}

	product, validationErrors := validateProductForm(form)
	if len(validationErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, ValidationFailure{Errors: validationErrors, Form: form})
		return
	}

	// The image is written before the insert so a failed write never leaves
	// a product pointing at a missing file.
	if file != nil {
		path, err := images.Save(file, filename)
		if err != nil && !errors.Is(err, imagestore.ErrNoImage) {
			log.Printf("image save failed: %v", err)
			http.Error(w, "could not store image", http.StatusInternalServerError)
			return
		}
		if err == nil {
			product.ImagePath = path
		}
	}

	created, err := productRepo.Create(product)
	if err != nil {
		http.Error(w, "could not create product", http.StatusInternalServerError)
		return
	}
	log.Printf("product %d %q created by %s", created.ID, created.Name, Username(r))

	redirectToList(w, r)
}

// EditProductFormHandler godoc
// @Summary Product pre-filled for editing
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/edit/{id} [get]
func EditProductFormHandler(w http.ResponseWriter, r *http.Request) {
	getProductByID(w, r)
}

// DeleteProductFormHandler godoc
// @Summary Product shown on the delete confirmation page
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/delete/{id} [get]
func DeleteProductFormHandler(w http.ResponseWriter, r *http.Request) {
	getProductByID(w, r)
}

func getProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	product, err := productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Description Replaces all mutable fields. A newly uploaded image replaces the stored path; without one the existing path is carried forward.
// @Tags products
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param Id formData int true "Product ID, must match the path"
// @Param Name formData string true "Product name"
// @Param Description formData string false "Description"
// @Param Price formData string true "Price"
// @Param Category formData string true "Category"
// @Param imageFile formData file false "Replacement image"
// @Success 303 "Redirects to /products"
// @Failure 400 {object} ValidationFailure
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/edit/{id} [post]
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	form, file, filename, err := parseProductForm(w, r)
	if err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if file != nil {
		defer file.Close()
	}

	if form.Id != id {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	product, validationErrors := validateProductForm(form)
	if len(validationErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, ValidationFailure{Errors: validationErrors, Form: form})
		return
	}
	product.ID = id

	if file != nil {
		path, err := images.Save(file, filename)
		if err != nil && !errors.Is(err, imagestore.ErrNoImage) {
			log.Printf("image save failed: %v", err)
			http.Error(w, "could not store image", http.StatusInternalServerError)
			return
		}
		if err == nil {
			product.ImagePath = path
		}
	}
	if product.ImagePath == "" {
		// No new image: carry the stored path forward, never null it out.
		existing, err := productRepo.GetByID(id)
		if err != nil {
			if errors.Is(err, repo.ErrProductNotFound) {
				http.Error(w, "product not found", http.StatusNotFound)
				return
			}
			http.Error(w, "could not fetch product", http.StatusInternalServerError)
			return
		}
		product.ImagePath = existing.ImagePath
	}

	if _, err := productRepo.Update(product); err != nil {
		if errors.Is(err, repo.ErrConcurrentUpdate) {
			// Deleted out from under us is a plain 404; anything else is fatal.
			if _, err := productRepo.GetByID(id); errors.Is(err, repo.ErrProductNotFound) {
				http.Error(w, "product not found", http.StatusNotFound)
				return
			}
			http.Error(w, "concurrent update conflict", http.StatusInternalServerError)
			return
		}
		http.Error(w, "could not update product", http.StatusInternalServerError)
		return
	}

	redirectToList(w, r)
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Description Removes the product and redirects to the list. Deleting an absent id is treated as already deleted.
// @Tags products
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 303 "Redirects to /products"
// @Failure 400 {string} string "Invalid ID"
// @Failure 500 {string} string "Internal error"
// @Router /products/delete/{id} [post]
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	if err := productRepo.Delete(id); err != nil && !errors.Is(err, repo.ErrProductNotFound) {
		http.Error(w, "could not delete product", http.StatusInternalServerError)
		return
	}
	log.Printf("product %d deleted by %s", id, Username(r))

	redirectToList(w, r)
}
