package server

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/types"
)

// AuthHandler authenticates the configured operator credential and
// issues session tokens.
type AuthHandler struct {
	username     string
	passwordHash string
	passwords    *config.PasswordConfig
	jwtService   *JWTService
	validator    *validator.Validate
}

// NewAuthHandler creates an AuthHandler for a single operator credential.
func NewAuthHandler(username, passwordHash string, passwords *config.PasswordConfig, jwtService *JWTService) *AuthHandler {
	return &AuthHandler{
		username:     username,
		passwordHash: passwordHash,
		passwords:    passwords,
		jwtService:   jwtService,
		validator:    validator.New(),
	}
}

// Login handles login requests and returns a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		http.Error(w, extractValidationErrors(err), http.StatusBadRequest)
		return
	}

	// Verify the password even on a username mismatch so both failure
	// modes take comparable time.
	usernameOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.username)) == 1
	passwordOK := h.passwords.VerifyPassword(h.passwordHash, req.Password)
	if !usernameOK || !passwordOK {
		err := &ErrInvalidCredentials{}
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	token, err := h.jwtService.GenerateToken(req.Username)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(types.LoginResponse{Token: token})
}

// extractValidationErrors reduces validator errors to one message.
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
	}
	return "validation error: invalid request"
}
