package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/Myseie/ShopInventory/internal/http/handlers"
)

var imageDir = "wwwroot/images"

// SetImageDir points the static /images route at the upload directory.
func SetImageDir(dir string) {
	imageDir = dir
}

func NewRouter() http.Handler {
	r := chi.NewRouter()

	r.Get("/products", handlers.GetProductsHandler)
	r.Get("/products/create", handlers.NewProductFormHandler)
	r.Get("/products/edit/{id}", handlers.EditProductFormHandler)
	r.Get("/products/delete/{id}", handlers.DeleteProductFormHandler)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware)
		r.Post("/products/create", handlers.CreateProductHandler)
		r.Post("/products/edit/{id}", handlers.UpdateProductHandler)
		r.Post("/products/delete/{id}", handlers.DeleteProductHandler)
		r.Post("/products/import", handlers.ImportProductsHandler)
	})

	r.Post("/register", handlers.RegisterHandler)
	r.With(RateLimitMiddleware).Post("/login", handlers.LoginHandler)

	r.Get("/swagger/*", httpSwagger.Handler())
	r.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.Dir(imageDir))))

	return r
}
