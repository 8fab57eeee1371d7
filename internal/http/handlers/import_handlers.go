package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

type csvRow struct {
	Name        string
	Description string
	Price       string
	Category    string
}

func parseCSV(file multipart.File) ([]csvRow, error) {
	reader := csv.NewReader(file)
	headers, err := reader.Read()
	if err != nil {
		return nil, errors.New("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"name", "price", "category"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("missing CSV column %q", required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var rows []csvRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %v", err)
		}

		rows = append(rows, csvRow{
			Name:        field(record, "name"),
			Description: field(record, "description"),
			Price:       field(record, "price"),
			Category:    field(record, "category"),
		})
	}
	return rows, nil
}

// ImportProductsHandler godoc
// @Summary Import products via CSV
// @Description CSV columns: name, description (optional), price, category. Rows whose name already exists are skipped, or updated with mode=update.
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Param mode query string false "Import mode (skip|update)"
// @Success 200 {object} ImportProductsResult
// @Failure 400 {string} string "Invalid file"
// @Failure 500 {string} string "Internal error"
// @Router /products/import [post]
// @Security BearerAuth
func ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	mode := strings.ToLower(r.URL.Query().Get("mode"))
	if mode != "update" {
		mode = "skip" // default
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	records, err := parseCSV(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var imported int
	var errorsList []ProductValidationError

	for i, rec := range records {
		rowNum := i + 2 // header is row 1

		product, rowErrs := validateProductForm(ProductForm{
			Name:        rec.Name,
			Description: rec.Description,
			Price:       rec.Price,
			Category:    rec.Category,
		})
		if len(rowErrs) > 0 {
			for _, rowErr := range rowErrs {
				errorsList = append(errorsList, ProductValidationError{
					Field:       rowErr.Field,
					Description: fmt.Sprintf("row %d: %s", rowNum, rowErr.Description),
				})
			}
			continue
		}

		existing, err := productRepo.GetByName(product.Name)
		if err == nil {
			if mode == "skip" {
				errorsList = append(errorsList, ProductValidationError{
					Description: fmt.Sprintf("row %d: product '%s' already exists", rowNum, product.Name),
				})
				continue
			}
			existing.Description = product.Description
			existing.Price = product.Price
			existing.Category = product.Category
			if _, err := productRepo.Update(existing); err != nil {
				errorsList = append(errorsList, ProductValidationError{
					Description: fmt.Sprintf("row %d: failed to update '%s'", rowNum, product.Name),
				})
				continue
			}
			imported++
			continue
		}

		if _, err := productRepo.Create(product); err != nil {
			errorsList = append(errorsList, ProductValidationError{
				Description: fmt.Sprintf("row %d: %v", rowNum, err),
			})
			continue
		}
		imported++
	}

	if err := writeJSON(w, http.StatusOK, ImportProductsResult{
		ImportedProductsCount: imported,
		Errors:                errorsList,
	}); err != nil {
		http.Error(w, "", http.StatusInternalServerError)
	}
}
