package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/adityasampath/Imagify-Project/internal/pkg/token"
	"github.com/adityasampath/Imagify-Project/internal/pkg/usercontext"
)

// RequireTokenAuth authenticates requests carrying a signed bearer token in the
// `token` header or an `Authorization: Bearer <token>` header. Failures return
// JSON 401 and never run downstream handlers.
func RequireTokenAuth() fiber.Handler {
	secret := token.Secret()

	return func(c *fiber.Ctx) error {
		raw := extractTokenFromHeader(c)
		if raw == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Not Authorized. Login Again",
			})
		}

		userID, err := token.Parse(raw, secret)
		if err != nil {
			if errors.Is(err, token.ErrMalformedSubject) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"success": false,
					"message": "Invalid token format",
				})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Invalid or expired token",
			})
		}

		c.Locals(usercontext.KeyUserContext, usercontext.UserContext{
			UserID:     userID,
			IsLoggedIn: true,
		})
		c.Locals(usercontext.KeyFromProtected, true)
		c.Locals(usercontext.KeyUserID, userID)

		return c.Next()
	}
}

func extractTokenFromHeader(c *fiber.Ctx) string {
	raw := strings.TrimSpace(c.Get("token"))
	if raw != "" {
		return raw
	}
	auth := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
