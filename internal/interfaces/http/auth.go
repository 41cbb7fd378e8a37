package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"rupeeflow/internal/domain/user"
	"rupeeflow/internal/shared/auth"
	"rupeeflow/internal/shared/middleware"
)

type AuthHandler struct {
	userRepo user.Repository
	jwt      *auth.JWT
}

func NewAuthHandler(userRepo user.Repository, jwt *auth.JWT) *AuthHandler {
	return &AuthHandler{
		userRepo: userRepo,
		jwt:      jwt,
	}
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type AuthResponse struct {
	User UserResponse `json:"user"`
}

// HandleSignup creates a new user and starts a session
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Missing fields")
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("Error hashing password during signup: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	userModel, err := h.userRepo.Create(r.Context(), user.CreateUserParams{
		ID:           uuid.NewString(),
		Username:     req.Username,
		PasswordHash: passwordHash,
	})
	if errors.Is(err, user.ErrDuplicateUsername) {
		respondError(w, http.StatusBadRequest, "Username already exists")
		return
	}
	if err != nil {
		log.Printf("Error creating user %q: %v", req.Username, err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := h.jwt.Generate(userModel.ID, userModel.Username)
	if err != nil {
		log.Printf("Error generating token for new user %s: %v", userModel.ID, err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	setSessionCookie(w, token)
	respondJSON(w, http.StatusOK, AuthResponse{
		User: UserResponse{ID: userModel.ID, Username: userModel.Username},
	})
}

// HandleLogin verifies credentials and starts a session. Unknown username and
// wrong password produce the same response.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Missing fields")
		return
	}

	userModel, err := h.userRepo.GetByUsername(r.Context(), req.Username)
	if errors.Is(err, user.ErrNotFound) {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		log.Printf("Error looking up user %q: %v", req.Username, err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := auth.VerifyPassword(userModel.PasswordHash, req.Password); err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.jwt.Generate(userModel.ID, userModel.Username)
	if err != nil {
		log.Printf("Error generating token for user %s: %v", userModel.ID, err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	setSessionCookie(w, token)
	respondJSON(w, http.StatusOK, AuthResponse{
		User: UserResponse{ID: userModel.ID, Username: userModel.Username},
	})
}

// HandleLogout clears the session cookie. The token itself stays valid until
// its expiry; logout only removes the client's copy.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
		MaxAge:   -1,
	})

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleMe returns the identity resolved by the auth middleware
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	username, _ := r.Context().Value(middleware.UsernameKey).(string)

	respondJSON(w, http.StatusOK, AuthResponse{
		User: UserResponse{ID: userID, Username: username},
	})
}

// setSessionCookie delivers the session token. SameSite=None so the cookie is
// sent on cross-site requests, which requires Secure.
func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
		MaxAge:   int(auth.TokenTTL.Seconds()),
	})
}
