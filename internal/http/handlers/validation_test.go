package handlers

import (
	"strings"
	"testing"
)

func fieldsWithErrors(errs []ProductValidationError) []string {
	fields := make([]string, len(errs))
	for i, e := range errs {
		fields[i] = e.Field
	}
	return fields
}

func validForm() ProductForm {
	return ProductForm{Name: "Widget", Description: "A widget", Price: "9.99", Category: "Tools"}
}

func TestValidateProductForm_Valid(t *testing.T) {
	product, errs := validateProductForm(validForm())
	if len(errs) > 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if product.Name != "Widget" || product.Price != 9.99 || product.Category != "Tools" {
		t.Errorf("unexpected product %+v", product)
	}
}

func TestValidateProductForm_PriceBoundaries(t *testing.T) {
	tests := []struct {
		price string
		valid bool
	}{
		{"0.01", true},
		{"10000", true},
		{"0", false},
		{"0.009", false},
		{"10000.01", false},
		{"-1", false},
		{"", false},
		{"abc", false},
	}

	for _, tt := range tests {
		form := validForm()
		form.Price = tt.price
		_, errs := validateProductForm(form)
		if tt.valid && len(errs) > 0 {
			t.Errorf("price %q: expected valid, got %v", tt.price, errs)
		}
		if !tt.valid && len(errs) == 0 {
			t.Errorf("price %q: expected a validation error", tt.price)
		}
	}
}

func TestValidateProductForm_LengthLimits(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*ProductForm)
		badField string
	}{
		{"name at limit ok", func(f *ProductForm) { f.Name = strings.Repeat("n", 100) }, ""},
		{"name over limit", func(f *ProductForm) { f.Name = strings.Repeat("n", 101) }, "Name"},
		{"multibyte name at limit ok", func(f *ProductForm) { f.Name = strings.Repeat("ä", 100) }, ""},
		{"multibyte name over limit", func(f *ProductForm) { f.Name = strings.Repeat("ä", 101) }, "Name"},
		{"name blank", func(f *ProductForm) { f.Name = "   " }, "Name"},
		{"description at limit ok", func(f *ProductForm) { f.Description = strings.Repeat("d", 500) }, ""},
		{"description over limit", func(f *ProductForm) { f.Description = strings.Repeat("d", 501) }, "Description"},
		{"multibyte description at limit ok", func(f *ProductForm) { f.Description = strings.Repeat("ö", 500) }, ""},
		{"description empty ok", func(f *ProductForm) { f.Description = "" }, ""},
		{"category at limit ok", func(f *ProductForm) { f.Category = strings.Repeat("c", 50) }, ""},
		{"category over limit", func(f *ProductForm) { f.Category = strings.Repeat("c", 51) }, "Category"},
		{"category missing", func(f *ProductForm) { f.Category = "" }, "Category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)
			_, errs := validateProductForm(form)

			if tt.badField == "" {
				if len(errs) > 0 {
					t.Errorf("expected valid, got %v", errs)
				}
				return
			}
			found := false
			for _, f := range fieldsWithErrors(errs) {
				if f == tt.badField {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on %s, got %v", tt.badField, errs)
			}
		})
	}
}
