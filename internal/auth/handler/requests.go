package handler

import (
	"github.com/asaskevich/govalidator"

	dErrors "cleanslate/pkg/domain-errors"
)

// RegisterRequest creates an account.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements httputil.Validatable.
func (r RegisterRequest) Validate() error {
	if !govalidator.StringLength(r.Username, "3", "100") {
		return dErrors.New(dErrors.CodeValidation, "username must be 3 to 100 characters")
	}
	if r.Email != "" && !govalidator.IsEmail(r.Email) {
		return dErrors.New(dErrors.CodeValidation, "email is not a valid address")
	}
	if !govalidator.StringLength(r.Password, "8", "128") {
		return dErrors.New(dErrors.CodeValidation, "password must be 8 to 128 characters")
	}
	return nil
}

// LoginRequest exchanges credentials for an access token.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate implements httputil.Validatable.
func (r LoginRequest) Validate() error {
	if r.Username == "" || r.Password == "" {
		return dErrors.New(dErrors.CodeValidation, "username and password are required")
	}
	return nil
}
