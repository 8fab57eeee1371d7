package handlers

import (
	"errors"
	"net"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/Myseie/ShopInventory/internal/auth"
	"github.com/Myseie/ShopInventory/internal/models"
	"github.com/Myseie/ShopInventory/internal/repo"
)

// RegisterHandler godoc
// @Summary Register a new admin user and return a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "username and password"
// @Success 201 {object} RegisterResult
// @Failure 400 {string} string "Invalid input"
// @Failure 409 {string} string "User exists"
// @Router /register [post]
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var creds CredentialsRequest
	if err := readJSON(w, r, &creds); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if creds.Username == "" || creds.Password == "" {
		http.Error(w, "missing credentials", http.StatusBadRequest)
		return
	}
	if len(creds.Username) < 3 || len(creds.Password) < 6 {
		http.Error(w, "username or password too short", http.StatusBadRequest)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "failed to hash password", http.StatusInternalServerError)
		return
	}

	user, err := userRepo.CreateUser(models.User{
		Username:     creds.Username,
		PasswordHash: string(hashed),
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			http.Error(w, "user already exists", http.StatusConflict)
			return
		}
		http.Error(w, "could not create user", http.StatusInternalServerError)
		return
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, RegisterResult{Message: "user created", Token: token})
}

// LoginHandler godoc
// @Summary Authenticate and return a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "username and password"
// @Success 200 {object} LoginResult
// @Failure 400 {string} string "Invalid input"
// @Failure 401 {string} string "Invalid credentials"
// @Failure 403 {string} string "Temporarily banned"
// @Router /login [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	ip := clientIP(r)
	if guard.IsBanned(r.Context(), ip) {
		http.Error(w, "too many failed attempts, try again later", http.StatusForbidden)
		return
	}

	var creds CredentialsRequest
	if err := readJSON(w, r, &creds); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	user, err := userRepo.GetByUsername(creds.Username)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			guard.RecordFailure(r.Context(), ip)
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		http.Error(w, "could not fetch user", http.StatusInternalServerError)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
		guard.RecordFailure(r.Context(), ip)
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	guard.Reset(r.Context(), ip)

	token, err := auth.GenerateToken(user)
	if err != nil {
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, LoginResult{Token: token})
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
