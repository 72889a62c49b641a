// Package validator adapts go-playground/validator to echo's Validator seam.
package validator

import (
	validatorLib "github.com/go-playground/validator/v10"
)

// requestValidator wraps a single validator instance; it is safe for
// concurrent use and caches struct metadata between requests.
type requestValidator struct {
	validate *validatorLib.Validate
}

// New creates the echo request validator.
func New() *requestValidator {
	return &requestValidator{
		validate: validatorLib.New(validatorLib.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator. The raw validator.ValidationErrors are
// returned unwrapped so the central error handler can render field details.
func (v *requestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
