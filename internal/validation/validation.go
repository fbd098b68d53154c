// Package validation wraps a shared go-playground validator and maps its
// failures onto domain errors.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report fields by their JSON names so clients see what they sent.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Struct validates v and returns the first failure as a domain error.
func Struct(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.ErrInternal(err)
	}
	return fieldError(verrs[0])
}

// IsEmail reports whether s is a syntactically valid email address.
func IsEmail(s string) bool {
	return instance().Var(s, "required,email") == nil
}

func fieldError(fe validator.FieldError) error {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return domain.ErrMissingField(field)
	case "email":
		return domain.ErrInvalidField(field, "invalid format")
	case "url":
		return domain.ErrInvalidField(field, "invalid url")
	case "max":
		return domain.ErrInvalidField(field, "too long (max "+fe.Param()+")")
	case "min":
		return domain.ErrInvalidField(field, "too short (min "+fe.Param()+")")
	default:
		return domain.ErrInvalidField(field, fe.Tag())
	}
}
