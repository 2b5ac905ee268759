package validator

import (
	"errors"
	"fmt"
	"strings"

	"wedmarket/pkg/dates"
	"wedmarket/pkg/logger"
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
	messages := make([]string, 0, len(v))
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

func (v ValidationErrors) Details() map[string]any {
	fields := make(map[string]string, len(v))
	for _, err := range v {
		fields[err.Field] = err.Message
	}
	return map[string]any{"fields": fields}
}

type AvailabilityValidator struct {
	validate *validator.Validate
}

func NewAvailabilityValidator(log *logger.Logger) *AvailabilityValidator {
	v := validator.New()
	if err := v.RegisterValidation("iso_date", validateISODate); err != nil {
		log.Fatal("Failed to register 'iso_date' validator", "error", err)
	}
	return &AvailabilityValidator{validate: v}
}

func validateISODate(fl validator.FieldLevel) bool {
	return dates.IsISODate(fl.Field().String())
}

func (v *AvailabilityValidator) ValidateUpdate(update *model.AvailabilityUpdate) error {
	if err := v.check(update); err != nil {
		return err
	}
	return consistency(*update.IsAvailable, update.BookingStatus)
}

func (v *AvailabilityValidator) ValidateRecord(record *model.AvailabilityRecord) error {
	if err := v.check(record); err != nil {
		return err
	}
	return consistency(record.IsAvailable, record.BookingStatus)
}

// consistency rejects records that claim a free day is booked or blocked.
func consistency(isAvailable bool, status model.BookingStatus) error {
	if isAvailable && (status == model.BookingStatusBooked || status == model.BookingStatusBlocked) {
		return ValidationErrors{{
			Field:   "bookingStatus",
			Message: fmt.Sprintf("cannot be '%s' when isAvailable is true", status),
		}}
	}
	return nil
}

func (v *AvailabilityValidator) check(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, ValidationError{Field: lowerFirst(fe.Field()), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "iso_date":
		return "must be a date formatted as YYYY-MM-DD"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
