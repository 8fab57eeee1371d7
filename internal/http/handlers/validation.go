package handlers

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Myseie/ShopInventory/internal/models"
)

const (
	maxNameLength        = 100
	maxDescriptionLength = 500
	maxCategoryLength    = 50
	minPrice             = 0.01
	maxPrice             = 10000
)

type ProductValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// validateProductForm checks the catalog constraints and, when they all
// hold, returns the product assembled from the form. Id and ImagePath are
// left for the caller: the storage layer owns the one, the image store the
// other.
func validateProductForm(f ProductForm) (models.Product, []ProductValidationError) {
	errs := []ProductValidationError{}

	// Limits count characters, not bytes, so multibyte names get the full
	// 100 characters.
	if strings.TrimSpace(f.Name) == "" {
		errs = append(errs, ProductValidationError{Field: "Name", Description: "Name is required"})
	} else if utf8.RuneCountInString(f.Name) > maxNameLength {
		errs = append(errs, ProductValidationError{Field: "Name", Description: "Name must be at most 100 characters"})
	}

	if utf8.RuneCountInString(f.Description) > maxDescriptionLength {
		errs = append(errs, ProductValidationError{Field: "Description", Description: "Description must be at most 500 characters"})
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
	if strings.TrimSpace(f.Price) == "" {
		errs = append(errs, ProductValidationError{Field: "Price", Description: "Price is required"})
	} else if err != nil {
		errs = append(errs, ProductValidationError{Field: "Price", Description: "Price must be a number"})
	} else if price < minPrice || price > maxPrice {
		errs = append(errs, ProductValidationError{Field: "Price", Description: "Price must be between 0.01 and 10000"})
	}

	if strings.TrimSpace(f.Category) == "" {
		errs = append(errs, ProductValidationError{Field: "Category", Description: "Category is required"})
	} else if utf8.RuneCountInString(f.Category) > maxCategoryLength {
		errs = append(errs, ProductValidationError{Field: "Category", Description: "Category must be at most 50 characters"})
	}

	if len(errs) > 0 {
		return models.Product{}, errs
	}

	return models.Product{
		Name:        f.Name,
		Description: f.Description,
		Price:       price,
		Category:    f.Category,
	}, nil
}
