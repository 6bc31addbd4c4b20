package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	apperrors "github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/common/errors"

	"github.com/go-playground/validator/v10"
)

// RequestValidator checks request bodies against their validate tags and
// reports field paths using the JSON names clients sent.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &RequestValidator{validate: v}
}

// Check validates s and returns a 400 prefixed with message on failure.
func (rv *RequestValidator) Check(s interface{}, message string) error {
	if err := rv.validate.Struct(s); err != nil {
		return apperrors.BadRequest(message + ": " + describe(err))
	}
	return nil
}

// Valid reports whether s passes validation.
func (rv *RequestValidator) Valid(s interface{}) bool {
	return rv.validate.Struct(s) == nil
}

// ValidVar reports whether a single value satisfies tag.
func (rv *RequestValidator) ValidVar(value interface{}, tag string) bool {
	return rv.validate.Var(value, tag) == nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	if fe.Param() != "" {
		return fmt.Sprintf("%s must satisfy %s=%s", field, fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s is %s", field, fe.Tag())
}
