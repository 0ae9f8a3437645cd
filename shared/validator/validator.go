package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"io"
	"reflect"
	"strings"
	"time"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

// registerDateOnlyValidation accepts YYYY-MM-DD calendar dates.
func registerDateOnlyValidation(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := time.Parse(constant.DateOnlyFormat, value)

	return err == nil
}

func registerNotBlankValidation(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)
	if !ok {
		return !field.Field().IsZero()
	}

	return strings.TrimSpace(value) != ""
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}

		return name
	})

	// Fields whose type has a Validate(*config.Config) error method validate themselves.
	err := validate.RegisterValidation("self", func(fl val.FieldLevel) bool {
		method := fl.Field().MethodByName("Validate")
		if method.IsValid() {
			result := method.Call([]reflect.Value{reflect.ValueOf(config.Get())})

			return result[0].IsNil()
		}

		return false
	})
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("empty", func(fl val.FieldLevel) bool {
		return fl.Field().IsZero()
	})
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("dateonly", registerDateOnlyValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("notblank", registerNotBlankValidation)
	if err != nil {
		panic(err)
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

// ValidateOptional is Validate for bodies that may be omitted entirely.
func ValidateOptional[T any](r io.Reader, data *T) error {
	err := json.NewDecoder(r).Decode(data)
	if err != nil && !errors.Is(err, io.EOF) {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
