// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	validatorlib "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	domainerrors "storefront/internal/domain/errors"
)

type echoValidator struct {
	validate *validatorlib.Validate
}

// New creates the request validator used by the echo server.
func New() echo.Validator {
	return &echoValidator{validate: validatorlib.New()}
}

// Validate checks a bound request struct against its validation tags.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
