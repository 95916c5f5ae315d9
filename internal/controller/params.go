package controller

import (
	"customer-insight-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// pathId parses a uuid route param. A malformed id cannot name anything, so
// it reads as not found.
func pathId(ctx *fiber.Ctx, param, resource string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(param))
	if err != nil {
		return uuid.Nil, apperror.NotFound("%s not found", resource)
	}
	return id, nil
}

// parseOptionalBody decodes the body when there is one.
func parseOptionalBody(ctx *fiber.Ctx, out interface{}) error {
	if len(ctx.Body()) == 0 {
		return nil
	}
	if err := ctx.BodyParser(out); err != nil {
		return apperror.Validation("malformed request body")
	}
	return nil
}
