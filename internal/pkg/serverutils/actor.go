package serverutils

import (
	"strings"

	"customer-insight-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

const actorQueryParam = "rmId"

// ResolveActorId picks the acting RM: an explicit value wins, then each
// fallback in order. The first non-blank candidate is returned.
func ResolveActorId(explicit string, fallbacks ...string) (string, error) {
	candidates := append([]string{explicit}, fallbacks...)
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			return c, nil
		}
	}
	return "", apperror.Validation("rmId is required")
}

// ActorFromRequest resolves the actor with precedence body field, query
// parameter, then session. Handlers call it once.
func ActorFromRequest(ctx *fiber.Ctx, bodyValue *string) (string, error) {
	explicit := ""
	if bodyValue != nil {
		explicit = *bodyValue
	}
	return ResolveActorId(explicit, ctx.Query(actorQueryParam), SessionUserId(ctx))
}
