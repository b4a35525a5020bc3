// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	playground "github.com/go-playground/validator/v10"

	domainerrors "mediarating/internal/domain/errors"
)

// RequestValidator validates bound request DTOs against their struct tags.
type RequestValidator struct {
	validate *playground.Validate
}

// New creates the request validator.
func New() *RequestValidator {
	return &RequestValidator{validate: playground.New()}
}

// Validate implements echo.Validator. Tag violations surface as a 400
// without leaking field-level detail to the caller.
func (v *RequestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
