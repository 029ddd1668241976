// Package validation binds and validates request payloads.
//
// Payloads declare rules with validator struct tags; failures become
// 400 responses carrying a short plain-text reason.
package validation

import (
	"reflect"
	"strings"

	"github.com/deppfellow/dispenser-api/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Validatable is implemented by request payloads that validate themselves.
type Validatable interface {
	Validate() error
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	return v
}

// Struct runs the tag rules on v.
func Struct(v any) error {
	return validate.Struct(v)
}

var codeInvalidBody = "INVALID_REQUEST_BODY"

// BindAndValidate binds the request into payload and validates it.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError("Invalid request body", &codeInvalidBody)
	}

	if err := payload.Validate(); err != nil {
		return errs.NewBadRequestError(messageFor(err), nil)
	}

	return nil
}

// messageFor reports the first failed rule.
func messageFor(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err.Error()
	}

	first := validationErrors[0]

	switch first.Tag() {
	case "required":
		return "Missing " + first.Field()
	case "max":
		return first.Field() + " must not exceed " + first.Param() + " characters"
	default:
		return "Invalid " + first.Field()
	}
}
