package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var std = validator.New()

// Struct validates i against its `validate` tags with the shared validator
func Struct(i interface{}) error {
	return std.Struct(i)
}

func NewCustomValidator(v *validator.Validate) echo.Validator {
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

// Validate runs the tag validation and then, if i implements it, i's own Validate
func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return err
	}
	if s, ok := i.(interface{ Validate() error }); ok {
		return s.Validate()
	}
	return nil
}
