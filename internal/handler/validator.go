package handler

import (
	"github.com/go-playground/validator/v10"
)

// Validator adapts go-playground/validator to Echo's Validator
// interface so request structs can declare `validate` tags and
// handlers can call c.Validate after binding.
type Validator struct {
	validate *validator.Validate
}

// NewValidator returns a Validator ready to be assigned to
// echo.Echo.Validator.
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
