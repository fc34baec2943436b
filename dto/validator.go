package dto

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var metricNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]{0,63}$`)

func init() {
	validate = validator.New()
	validate.RegisterValidation("metric_name", validateMetricName)
}

func GetValidator() *validator.Validate {
	return validate
}

// validateMetricName accepts snake_case identifiers such as content_published.
func validateMetricName(fl validator.FieldLevel) bool {
	return metricNamePattern.MatchString(fl.Field().String())
}

// ValidateMetricKeys checks every key of a metrics map.
func ValidateMetricKeys(metrics map[string]float64) []ValidationError {
	var errs []ValidationError
	for k := range metrics {
		if !metricNamePattern.MatchString(k) {
			errs = append(errs, ValidationError{Field: "metrics." + k, Message: k + " is not a valid metric name"})
		}
	}
	return errs
}

func FormatValidationErrors(err error) []ValidationError {
	var errors []ValidationError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			var message string

			switch fieldError.Tag() {
			case "required", "required_without":
				message = fieldError.Field() + " is required"
			case "min":
				message = fieldError.Field() + " must be at least " + fieldError.Param()
			case "max":
				message = fieldError.Field() + " must be at most " + fieldError.Param()
			case "gte":
				message = fieldError.Field() + " must be greater than or equal to " + fieldError.Param()
			case "lte":
				message = fieldError.Field() + " must be less than or equal to " + fieldError.Param()
			case "oneof":
				message = fieldError.Field() + " must be one of: " + fieldError.Param()
			case "metric_name":
				message = fieldError.Field() + " must be a snake_case metric name"
			case "dive":
				message = fieldError.Field() + " contains invalid items"
			default:
				message = fieldError.Field() + " is invalid"
			}

			errors = append(errors, ValidationError{
				Field:   fieldError.Field(),
				Message: message,
			})
		}
	}

	return errors
}

type Validator interface {
	Validate() error
}

func CreateValidationErrorResponse(err error) ValidationErrorResponse {
	return ValidationErrorResponse{
		Code:    400,
		Message: "Validation failed",
		Errors:  FormatValidationErrors(err),
	}
}
