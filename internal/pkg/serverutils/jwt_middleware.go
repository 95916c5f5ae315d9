package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var errInvalidToken = errors.New("invalid token")

// ParseSessionToken verifies an HS256 session token and returns its user_id
// claim, which may be empty.
func ParseSessionToken(secret, tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", errInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errInvalidToken
	}
	userId, _ := claims["user_id"].(string)
	return userId, nil
}

// SessionMiddleware reads the caller's session from a bearer token when one
// is present and stores its user_id in Locals. Requests without a token pass
// through; an invalid token is rejected.
func SessionMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if authHeader == "" {
			return ctx.Next()
		}
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse("Malformed authorization header"))
		}

		userId, err := ParseSessionToken(secret, authHeader[7:])
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse("Invalid token"))
		}
		if userId != "" {
			ctx.Locals("user_id", userId)
		}
		return ctx.Next()
	}
}

// SessionUserId returns the user id stored by SessionMiddleware, or "".
func SessionUserId(ctx *fiber.Ctx) string {
	userId, _ := ctx.Locals("user_id").(string)
	return userId
}
