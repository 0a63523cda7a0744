package identity

import (
	"context"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/hydrosys/storefront/internal/backend"
)

// JWT returns the middleware protecting gateway routes. Tokens are the ones
// the remote backend issued; the gateway only verifies the shared HS256
// secret, it never mints tokens itself.
func JWT(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: []byte(secret),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		},
	})
}

// GetUserIDFromCtx pulls the authenticated user id out of the verified JWT
// claims. The backend has sent it as a number and as a string.
func GetUserIDFromCtx(c *fiber.Ctx) (int, error) {
	claims, err := claimsFromCtx(c)
	if err != nil {
		return 0, err
	}
	if raw, ok := claims["user_id"]; ok {
		switch v := raw.(type) {
		case float64:
			return int(v), nil
		case int:
			return v, nil
		case int64:
			return int(v), nil
		case string:
			id, err := strconv.Atoi(v)
			if err != nil {
				return 0, fiber.ErrUnauthorized
			}
			return id, nil
		}
	}
	return 0, fiber.ErrUnauthorized
}

// RoleFromCtx resolves the caller's role from the "rol" claim, accepting
// every historical tag. Missing claim means customer.
func RoleFromCtx(c *fiber.Ctx) Role {
	claims, err := claimsFromCtx(c)
	if err != nil {
		return RoleCustomer
	}
	if tag, ok := claims["rol"].(string); ok {
		return ParseRole(tag)
	}
	return RoleCustomer
}

// RequireAdmin guards the back-office routes.
func RequireAdmin(c *fiber.Ctx) error {
	if RoleFromCtx(c) != RoleAdministrator {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}
	return c.Next()
}

// RequestContext builds the context for downstream backend calls, carrying
// the caller's own bearer token so the backend sees the original identity.
func RequestContext(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	auth := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		ctx = backend.WithToken(ctx, strings.TrimPrefix(auth, "Bearer "))
	}
	return ctx
}

func claimsFromCtx(c *fiber.Ctx) (jwt.MapClaims, error) {
	u := c.Locals("user")
	if u == nil {
		return nil, fiber.ErrUnauthorized
	}
	tok, ok := u.(*jwt.Token)
	if !ok {
		return nil, fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}
