package validator

import (
	"errors"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required": "{field} is required",
	"notblank": "{field} must not be blank",
	"gte":      "{field} must be greater than or equal to {param}",
	"lte":      "{field} must be less than or equal to {param}",
	"gt":       "{field} must be greater than {param}",
	"max":      "{field} must be less than or equal to {param}",
	"min":      "{field} must be greater than or equal to {param}",
	"oneof":    "{field} must be one of {param}",
	"email":    "{field} must be a valid email address",
	"uuid":     "{field} must be a valid UUID",
	"alphanum": "{field} must contain only letters and digits",
	"dateonly": "{field} must be a date formatted as YYYY-MM-DD",
	"nefield":  "{field} must differ from {param}",
}

// Length rules read differently on strings.
var lengthMessages = map[string]string{
	"max": "{field} must be at most {param} characters",
	"min": "{field} must be at least {param} characters",
}

func describe(fieldErr val.FieldError) string {
	template, ok := messages[fieldErr.Tag()]
	if fieldErr.Kind() == reflect.String {
		if length, found := lengthMessages[fieldErr.Tag()]; found {
			template, ok = length, true
		}
	}

	if !ok {
		return fieldErr.Error()
	}

	return strings.NewReplacer("{field}", fieldErr.Field(), "{param}", fieldErr.Param()).Replace(template)
}

// message renders every failed rule, one per field, in declaration order.
func message(err error) string {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	lines := make([]string, 0, len(valErrors))
	for _, fieldErr := range valErrors {
		lines = append(lines, describe(fieldErr))
	}

	return strings.Join(lines, "; ")
}
