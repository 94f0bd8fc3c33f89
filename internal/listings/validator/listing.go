package validator

import (
	"errors"
	"fmt"
	"strings"

	"pgstay/internal/listings/filter"
	"pgstay/pkg/logger"
	"pgstay/pkg/model"

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
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// Details renders the errors as a field to message map for API responses.
func (v ValidationErrors) Details() map[string]any {
	details := make(map[string]any, len(v))
	for _, err := range v {
		details[err.Field] = err.Message
	}
	return details
}

type ListingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewListingValidator(log *logger.Logger) *ListingValidator {
	v := validator.New()

	log.Info("Listing validator initialized successfully")

	return &ListingValidator{
		validate: v,
		logger:   log,
	}
}

// Validate checks a listing read from the store or a seed file.
func (v *ListingValidator) Validate(listing *model.Listing) error {
	if err := v.validate.Struct(listing); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if len(listing.Images) == 0 {
		return ValidationErrors{
			ValidationError{
				Field:   "Images",
				Message: "at least one image is required for display",
			},
		}
	}

	seen := make(map[string]bool, len(listing.Rooms))
	for _, r := range listing.Rooms {
		if seen[r.ID] {
			return ValidationErrors{
				ValidationError{
					Field:   "Rooms",
					Message: fmt.Sprintf("duplicate room id %q", r.ID),
				},
			}
		}
		seen[r.ID] = true
	}

	return nil
}

func (v *ListingValidator) ValidateCriteria(c *filter.Criteria) error {
	if err := v.validate.Struct(c); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if c.MinRent.Set && c.MinRent.Value < 0 || c.MaxRent.Set && c.MaxRent.Value < 0 {
		return ValidationErrors{
			ValidationError{
				Field:   "Rent",
				Message: "rent bounds must not be negative",
			},
		}
	}

	if c.MinRent.Set && c.MaxRent.Set && c.MinRent.Value > c.MaxRent.Value {
		return ValidationErrors{
			ValidationError{
				Field:   "MinRent",
				Message: fmt.Sprintf("minRent (%d) must not exceed maxRent (%d)", c.MinRent.Value, c.MaxRent.Value),
			},
		}
	}

	return nil
}

func (v *ListingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "url":
			message = fmt.Sprintf("%s must be a valid URL", err.Field())
		case "latitude", "longitude":
			message = fmt.Sprintf("%s must be a valid %s", err.Field(), err.Tag())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
