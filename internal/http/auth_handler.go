package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Al-Ghoul/KarasChan/internal/auth"
	"github.com/Al-Ghoul/KarasChan/internal/user"
)

type AuthHandler struct {
	users     user.Repository
	jwtSecret string
}

func NewAuthHandler(users user.Repository, jwtSecret string) *AuthHandler {
	return &AuthHandler{users: users, jwtSecret: jwtSecret}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Address  string `json:"address"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var body signupRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	fields := map[string]string{}
	if _, err := mail.ParseAddress(body.Email); err != nil {
		fields["email"] = "must be a valid email address"
	}
	if body.Password == "" {
		fields["password"] = "is required"
	}
	if body.FullName == "" {
		fields["fullName"] = "is required"
	}
	if len(fields) > 0 {
		writeValidationErrors(w, fields)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		writeStorageError(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u := &user.User{
		Email:        body.Email,
		PasswordHash: string(hash),
		FullName:     body.FullName,
		Address:      body.Address,
	}
	if err := h.users.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "User already exists")
			return
		}
		writeStorageError(w)
		return
	}

	writeSuccess(w, http.StatusCreated, "User created successfully", u)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, err := h.users.GetByEmail(ctx, body.Email)
	if err != nil {
		writeStorageError(w)
		return
	}
	// A missing user and a wrong password are reported identically so
	// the endpoint does not leak which emails are registered.
	if u == nil || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(body.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := auth.GenerateToken(h.jwtSecret, u.ID)
	if err != nil {
		writeStorageError(w)
		return
	}

	writeSuccess(w, http.StatusOK, "Logged in successfully", map[string]string{"token": token})
}
