package handler

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func isValidationError(err error) bool {
	var verrs validation.Errors
	return errors.As(err, &verrs)
}
