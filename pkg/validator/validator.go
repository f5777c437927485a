// Package validator wraps go-playground struct validation with the custom
// rules the request types need.
package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// FieldError is the first rule a struct failed, ready for wrapping into a
// validation error.
type FieldError struct {
	Field string
	Rule  string
	Param string
}

func (e *FieldError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("field '%s' failed on rule '%s=%s'", e.Field, e.Rule, e.Param)
	}
	return fmt.Sprintf("field '%s' failed on rule '%s'", e.Field, e.Rule)
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	// uuid.UUID is an array type whose zero value passes "required", so uuid
	// fields carry their own rule.
	_ = v.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
		id, ok := fl.Field().Interface().(uuid.UUID)
		return ok && id != uuid.Nil
	})
	return v
}

// Struct validates data against its `validate` tags and returns the first
// failed rule, or nil when the struct is valid.
func Struct(data interface{}) *FieldError {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return &FieldError{Field: fmt.Sprintf("%T", data), Rule: "struct"}
	}

	first := verrs[0]
	return &FieldError{
		Field: first.StructNamespace(),
		Rule:  first.Tag(),
		Param: first.Param(),
	}
}
