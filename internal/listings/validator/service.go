package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"wedmarket/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	return fmt.Sprintf("validation failed: %d error(s)", len(v))
}

func (v ValidationErrors) Details() map[string]any {
	fields := make(map[string]any, len(v))
	for _, e := range v {
		fields[e.Field] = e.Message
	}
	return map[string]any{"fields": fields}
}

type ServiceValidator struct {
	validate *validator.Validate
}

func NewServiceValidator() *ServiceValidator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)

	return &ServiceValidator{
		validate: v,
	}
}

func (v *ServiceValidator) ValidateInput(in *model.ServiceInput) error {
	if err := v.check(in); err != nil {
		return err
	}
	if in.Price == nil && in.PriceRange == nil {
		return ValidationErrors{{Field: "price", Message: "either price or price_range is required"}}
	}
	return nil
}

func (v *ServiceValidator) ValidateUpdate(up *model.ServiceUpdate) error {
	if err := v.check(up); err != nil {
		return err
	}
	if isEmptyUpdate(up) {
		return ValidationErrors{{Field: "update", Message: "at least one field must be provided"}}
	}
	return nil
}

func (v *ServiceValidator) check(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		validationErrors = append(validationErrors, ValidationError{
			Field:   fieldPath(err.Namespace()),
			Message: message(err),
		})
	}

	return validationErrors
}

func message(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", err.Param())
	case "max":
		if err.Kind().String() == "slice" {
			return fmt.Sprintf("must contain at most %s items", err.Param())
		}
		return fmt.Sprintf("must be at most %s characters", err.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", err.Param())
	case "gtefield":
		return fmt.Sprintf("must not be lower than %s", strings.ToLower(err.Param()))
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed %s validation", err.Tag())
	}
}

// fieldPath drops the struct name from a validator namespace: "ServiceInput.images[0]"
// becomes "images[0]".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

func isEmptyUpdate(up *model.ServiceUpdate) bool {
	return up.Name == nil && up.Description == nil && up.Category == nil && up.Price == nil &&
		up.PriceRange == nil && up.Images == nil && up.IsActive == nil && up.Featured == nil
}
