package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"customer-insight-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateRequest runs struct tags and reports the first failure as a
// validation error naming the json field.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperror.Validation("invalid request")
	}
	fe := fieldErrs[0]
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return apperror.Validation("%s is required", field)
	case "oneof":
		return apperror.Validation("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "max":
		return apperror.Validation("%s must be at most %s characters", field, fe.Param())
	default:
		return apperror.Validation("%s is invalid", field)
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// ParseBody decodes the request body into req and validates it.
func ParseBody(ctx *fiber.Ctx, req interface{}) error {
	if err := ctx.BodyParser(req); err != nil {
		return apperror.Validation("malformed request body: %s", shortError(err))
	}
	return ValidateRequest(req)
}

func shortError(err error) string {
	msg := err.Error()
	if len(msg) > 120 {
		return fmt.Sprintf("%s...", msg[:120])
	}
	return msg
}
