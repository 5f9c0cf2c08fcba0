package handlers

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MatiasXp0/forca-tatica/internal/discord"
	apperrors "github.com/MatiasXp0/forca-tatica/pkg/util/errorutil"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("snowflake", isSnowflake)
	return v
}

// isSnowflake accepts an empty value or a platform ID made of digits only.
func isSnowflake(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	return v == "" || discord.ValidSnowflake(v)
}

// validateRequest checks struct tags and reports failures per field.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	details := make(map[string]any, len(validationErrors))
	for _, fieldErr := range validationErrors {
		details[fieldErr.Field()] = fieldMessage(fieldErr)
	}
	return apperrors.NewValidationError("invalid input", details)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_unless":
		return "required"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "snowflake":
		return "must be a numeric id"
	}
	return "failed " + fe.Tag()
}
