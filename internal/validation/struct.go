package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator returns a validator that reports fields by their json names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Struct runs the struct tags of s and converts every failure into a FieldError.
func Struct(v *validator.Validate, s any) Errors {
	var out Errors
	err := v.Struct(s)
	if err == nil {
		return out
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out.Add(err)
		return out
	}

	for _, fe := range verrs {
		out.Add(fromTag(fe))
	}
	return out
}

func fromTag(fe validator.FieldError) FieldError {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return &MissingFieldError{Field: field}
	case "min", "gte":
		if isNumeric(fe.Kind()) {
			return &FormatError{Field: field, Expected: "a value of at least " + fe.Param()}
		}
		return &FormatError{Field: field, Expected: "at least " + fe.Param() + " characters"}
	case "max", "lte":
		if isNumeric(fe.Kind()) {
			return &FormatError{Field: field, Expected: "a value of at most " + fe.Param()}
		}
		return &FormatError{Field: field, Expected: "at most " + fe.Param() + " characters"}
	case "email":
		return &FormatError{Field: field, Expected: "name@example.com"}
	case "oneof":
		return &FormatError{Field: field, Expected: "one of " + fe.Param()}
	default:
		return &FormatError{Field: field, Expected: fe.Tag()}
	}
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
