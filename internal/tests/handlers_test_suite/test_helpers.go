package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"golang.org/x/crypto/bcrypt"

	api "github.com/Myseie/ShopInventory/internal/http"
	handler "github.com/Myseie/ShopInventory/internal/http/handlers"
	"github.com/Myseie/ShopInventory/internal/imagestore"
	"github.com/Myseie/ShopInventory/internal/models"
	"github.com/Myseie/ShopInventory/internal/repo"
)

var (
	token       string
	productRepo *repo.InMemoryProductRepository
	imageDir    string
	imageStore  *imagestore.Store
)

func init() {
	setupTestRepos("secret")
	r := api.NewRouter()

	var err error
	token, err = generateToken(r, "admin", "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func setupTestRepos(password string) {
	productRepo = repo.NewInMemoryProductRepository()
	handler.SetProductRepo(productRepo)

	userRepo := repo.NewInMemoryUserRepository()
	handler.SetUserRepo(userRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userRepo.CreateUser(models.User{
		Username:     "admin",
		PasswordHash: string(hash),
	})

	var err error
	imageDir, err = os.MkdirTemp("", "images")
	if err != nil {
		panic(fmt.Sprintf("error creating image dir: %v", err))
	}
	imageStore, err = imagestore.New(imageDir)
	if err != nil {
		panic(fmt.Sprintf("error creating image store: %v", err))
	}
	handler.SetImageStore(imageStore)
	api.SetImageDir(imageDir)
}

// withBrokenImageStore swaps in a store whose directory is gone, so every
// write fails, and restores the working store when the test ends.
func withBrokenImageStore(t *testing.T) {
	t.Helper()

	dir, err := os.MkdirTemp("", "broken-images")
	if err != nil {
		t.Fatalf("error creating broken image dir: %v", err)
	}
	broken, err := imagestore.New(dir)
	if err != nil {
		t.Fatalf("error creating broken image store: %v", err)
	}
	os.RemoveAll(dir)

	handler.SetImageStore(broken)
	t.Cleanup(func() { handler.SetImageStore(imageStore) })
}

func clearAllProducts() {
	productRepo.Clear()
}

func generateToken(r http.Handler, username, password string) (string, error) {
	payload := handler.CredentialsRequest{Username: username, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

// multipartForm builds a multipart body from form fields plus an optional
// image part. An empty filename means no file part at all.
func multipartForm(fields map[string]string, filename, content string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		writer.WriteField(key, value)
	}
	if filename != "" {
		part, _ := writer.CreateFormFile("imageFile", filename)
		part.Write([]byte(content))
	}

	writer.Close()
	return &buf, writer.FormDataContentType()
}

func postForm(r http.Handler, path string, fields map[string]string, filename, content string) *httptest.ResponseRecorder {
	body, contentType := multipartForm(fields, filename, content)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createProduct(r http.Handler, fields map[string]string) *httptest.ResponseRecorder {
	return postForm(r, "/products/create", fields, "", "")
}

func getJSON(r http.Handler, path string, out any) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if out != nil && w.Code == http.StatusOK {
		if err := json.NewDecoder(w.Body).Decode(out); err != nil {
			return w, err
		}
	}
	return w, nil
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}

func readBody(w *httptest.ResponseRecorder) string {
	b, _ := io.ReadAll(w.Body)
	return string(b)
}
