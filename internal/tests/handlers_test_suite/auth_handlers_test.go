package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	api "github.com/Myseie/ShopInventory/internal/http"
	handler "github.com/Myseie/ShopInventory/internal/http/handlers"
	rl "github.com/Myseie/ShopInventory/internal/http/rate_limiter"
)

func postCredentials(r http.Handler, path, username, password string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(handler.CredentialsRequest{Username: username, Password: password})
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginHandler(t *testing.T) {
	t.Cleanup(rl.CleanupAllVisitors)
	r := api.NewRouter()

	w := postCredentials(r, "/login", "admin", "secret")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, readBody(w))
	}
	var resp handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil || resp.Token == "" {
		t.Fatalf("expected a token, got err=%v token=%q", err, resp.Token)
	}

	w = postCredentials(r, "/login", "admin", "wrong")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 on wrong password, got %d", w.Code)
	}

	w = postCredentials(r, "/login", "nobody", "secret")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 on unknown user, got %d", w.Code)
	}
}

func TestRegisterHandler(t *testing.T) {
	r := api.NewRouter()

	w := postCredentials(r, "/register", "editor", "hunter22")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, readBody(w))
	}
	var resp handler.RegisterResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil || resp.Token == "" {
		t.Fatalf("expected a token, got err=%v", err)
	}

	w = postCredentials(r, "/register", "editor", "hunter22")
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 on duplicate username, got %d", w.Code)
	}

	w = postCredentials(r, "/register", "ab", "short")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 on short credentials, got %d", w.Code)
	}
}

func TestMutatingRoutesRequireToken(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	body, contentType := multipartForm(map[string]string{
		"Name": "Widget", "Price": "9.99", "Category": "Tools",
	}, "", "")
	req := httptest.NewRequest(http.MethodPost, "/products/create", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}
	if _, err := productRepo.GetByID(1); err == nil {
		t.Error("expected no product created without token")
	}
}
