package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/humyn-ai/humyn/go/internal/auth"
	"github.com/humyn-ai/humyn/go/internal/models"
	"github.com/humyn-ai/humyn/go/internal/user"
)

const minPasswordLength = 6

type AuthHandler struct {
	users  user.Service
	tokens *auth.TokenManager
	google *auth.GoogleVerifier
}

func NewAuthHandler(users user.Service, tokens *auth.TokenManager, google *auth.GoogleVerifier) *AuthHandler {
	return &AuthHandler{
		users:  users,
		tokens: tokens,
		google: google,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleSignInRequest struct {
	Credential string `json:"credential"`
}

type accountPayload struct {
	ID         string      `json:"id"`
	Email      string      `json:"email"`
	Name       string      `json:"name"`
	Picture    string      `json:"picture,omitempty"`
	Plan       models.Plan `json:"plan"`
	UsageCount int         `json:"usageCount"`
	MaxUsage   int         `json:"maxUsage"`
}

type authResponse struct {
	Token string         `json:"token"`
	User  accountPayload `json:"user"`
}

func toAccountPayload(a *models.Account) accountPayload {
	return accountPayload{
		ID:         a.ID,
		Email:      a.Email,
		Name:       a.Name,
		Picture:    a.Picture,
		Plan:       a.Plan,
		UsageCount: a.UsageCount,
		MaxUsage:   a.MaxUsage,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, map[string]any{"error": "Invalid request body"})
		return
	}

	if req.Email == "" || req.Password == "" {
		writeJSONError(w, http.StatusBadRequest, map[string]any{"error": "Email and password are required"})
		return
	}
	if len(req.Password) < minPasswordLength {
		writeJSONError(w, http.StatusBadRequest, map[string]any{"error": "Password must be at least 6 characters"})
		return
	}

	account, err := h.users.RegisterEmail(r.Context(), req.Email, req.Password)
	if errors.Is(err, user.ErrEmailTaken) {
		writeJSONError(w, http.StatusBadRequest, map[string]any{"error": "User already exists"})
		return
	}
	if err != nil {
		log.Printf("Register failed: %v", err)
		writeJSONError(w, http.StatusInternalServerError, map[string]any{"error": internalServerError})
		return
	}

	h.respondWithToken(w, account)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, map[string]any{"error": "Invalid request body"})
		return
	}

	if req.Email == "" || req.Password == "" {
		writeJSONError(w, http.StatusBadRequest, map[string]any{"error": "Email and password are required"})
		return
	}

	account, err := h.users.AuthenticateEmail(r.Context(), req.Email, req.Password)
	if errors.Is(err, user.ErrGoogleAccount) {
		writeJSONError(w, http.StatusBadRequest, map[string]any{"error": "Please use Google Sign-In for this account"})
		return
	}
	if errors.Is(err, user.ErrInvalidCredentials) {
		writeJSONError(w, http.StatusUnauthorized, map[string]any{"error": "Invalid credentials"})
		return
	}
	if err != nil {
		log.Printf("Login failed: %v", err)
		writeJSONError(w, http.StatusInternalServerError, map[string]any{"error": internalServerError})
		return
	}

	h.respondWithToken(w, account)
}

func (h *AuthHandler) GoogleSignIn(w http.ResponseWriter, r *http.Request) {
	var req googleSignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, map[string]any{"error": "Invalid request body"})
		return
	}

	profile, err := h.google.VerifyIDToken(req.Credential)
	if err != nil {
		writeJSONError(w, http.StatusUnauthorized, map[string]any{"error": "Invalid Google credential"})
		return
	}

	account, err := h.users.GetOrCreateGoogle(r.Context(), profile.Email, profile.Name, profile.Picture)
	if err != nil {
		log.Printf("Google sign-in failed: %v", err)
		writeJSONError(w, http.StatusInternalServerError, map[string]any{"error": internalServerError})
		return
	}

	h.respondWithToken(w, account)
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	account, ok := user.GetAccountFromContext(r.Context())
	if !ok {
		writeJSONError(w, http.StatusNotFound, map[string]any{"error": "User not found"})
		return
	}

	writeJSON(w, toAccountPayload(account))
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, account *models.Account) {
	token, err := h.tokens.Issue(account.ID)
	if err != nil {
		log.Printf("Failed to issue token: %v", err)
		writeJSONError(w, http.StatusInternalServerError, map[string]any{"error": internalServerError})
		return
	}

	writeJSON(w, authResponse{
		Token: token,
		User:  toAccountPayload(account),
	})
}
