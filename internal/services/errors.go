package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrValidation        = errors.New("invalid input")
	ErrConflict          = errors.New("already exists")
	ErrAuth              = errors.New("invalid credentials")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

var validate = validator.New()

// validateRequired reports missing fields as a single ErrValidation.
func validateRequired(input any) error {
	err := validate.Struct(input)

	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors

	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	fields := make([]string, 0, len(fieldErrs))

	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
	}

	return fmt.Errorf("%w: missing fields: %s", ErrValidation, strings.Join(fields, ", "))
}
