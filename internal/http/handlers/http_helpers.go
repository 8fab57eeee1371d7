package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/Myseie/ShopInventory/internal/models"
)

const maxUploadSize = 10 << 20 // 10 MB

type contextKey string

const usernameKey = contextKey("username")

// WithUsername stores the authenticated username on the context. Called by
// the auth middleware.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

// Username returns the authenticated username, or "" on public routes.
func Username(r *http.Request) string {
	if val, ok := r.Context().Value(usernameKey).(string); ok {
		return val
	}
	return ""
}

// readJSON tries to read the body of a request and converts it into JSON
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1048576 // one megabyte
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

// parseProductForm reads the product fields from a multipart or urlencoded
// form. The returned file is nil when no image was uploaded; when non-nil
// the caller owns closing it.
func parseProductForm(w http.ResponseWriter, r *http.Request) (ProductForm, multipart.File, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			return ProductForm{}, nil, "", fmt.Errorf("parse form: %w", err)
		}
		if err := r.ParseForm(); err != nil {
			return ProductForm{}, nil, "", fmt.Errorf("parse form: %w", err)
		}
	}

	form := ProductForm{
		Id:          parseInt(r.FormValue("Id")),
		Name:        r.FormValue("Name"),
		Description: r.FormValue("Description"),
		Price:       r.FormValue("Price"),
		Category:    r.FormValue("Category"),
		ImagePath:   r.FormValue("ImagePath"),
	}

	var file multipart.File
	var filename string
	if r.MultipartForm != nil {
		f, header, err := r.FormFile("imageFile")
		switch {
		case err != nil:
			// no file part; not an error
		case header.Size == 0:
			f.Close()
		default:
			file = f
			filename = header.Filename
		}
	}

	return form, file, filename, nil
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

func redirectToList(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		Id:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		ImagePath:   p.ImagePath,
	}
}
