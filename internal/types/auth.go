// Package types provides type definitions for structured data used throughout the resume-matcher system.
package types

import (
	"github.com/go-playground/validator/v10"
)

// LoginRequest represents the login request for obtaining an API token.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}

var loginValidator = validator.New()

// Validate checks the request against its validate tags.
func (r *LoginRequest) Validate() error {
	return loginValidator.Struct(r)
}
