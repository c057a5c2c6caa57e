package middleware

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs struct tag validation and flattens field errors into
// the map shape ValidationErrorResponse expects. Returns nil when valid.
func ValidateStruct(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["request"] = "Invalid request data!"
		return errors
	}

	for _, fe := range validationErrs {
		field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		switch fe.Tag() {
		case "required":
			errors[field] = fmt.Sprintf("%s is required!", fe.Field())
		case "email":
			errors[field] = "Invalid email!"
		case "min":
			errors[field] = fmt.Sprintf("%s must be at least %s characters long!", fe.Field(), fe.Param())
		case "max":
			errors[field] = fmt.Sprintf("%s must be at most %s characters long!", fe.Field(), fe.Param())
		case "oneof":
			errors[field] = fmt.Sprintf("%s must be one of: %s!", fe.Field(), fe.Param())
		case "gte":
			errors[field] = fmt.Sprintf("%s must be greater than or equal to %s!", fe.Field(), fe.Param())
		case "lte":
			errors[field] = fmt.Sprintf("%s must be less than or equal to %s!", fe.Field(), fe.Param())
		case "url":
			errors[field] = fmt.Sprintf("%s must be a valid URL!", fe.Field())
		default:
			errors[field] = fmt.Sprintf("%s is invalid!", fe.Field())
		}
	}
	return errors
}
