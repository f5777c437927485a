package middleware

import (
	"strings"

	"github.com/YasinKhilji/ims-project/internal/model"
	"github.com/YasinKhilji/ims-project/internal/repository"
	"github.com/YasinKhilji/ims-project/pkg/jwt"
	"github.com/YasinKhilji/ims-project/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequireAuth validates the bearer token and materializes the acting user
// from the database for the duration of the request. Missing or invalid
// identity is 401, distinct from the 403 of RequireRole.
func RequireAuth(tokens *jwt.Manager, userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "missing authorization token")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return response.Unauthorized(c, "invalid authorization format, use: Bearer <token>")
		}

		claims, err := tokens.Validate(parts[1])
		if err != nil {
			return response.Unauthorized(c, "invalid or expired token")
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return response.Unauthorized(c, "user not found")
		}
		if !user.IsActive {
			return response.Unauthorized(c, "user account is inactive")
		}

		c.Locals("user_id", user.ID)
		c.Locals("username", user.Username)
		c.Locals("user_role", user.Role)

		return c.Next()
	}
}

// RequireRole gates a route to the given role set. Authenticated users with
// the wrong role always get a hard 403, never a redirect.
func RequireRole(allowed ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("user_role").(model.Role)
		if !ok {
			return response.Forbidden(c, "no role found")
		}

		if !role.In(allowed...) {
			return response.Forbidden(c, "insufficient role for this action")
		}

		return c.Next()
	}
}

// UserID returns the authenticated user's id set by RequireAuth.
func UserID(c *fiber.Ctx) uuid.UUID {
	if id, ok := c.Locals("user_id").(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// UserRole returns the authenticated user's role set by RequireAuth.
func UserRole(c *fiber.Ctx) model.Role {
	if role, ok := c.Locals("user_role").(model.Role); ok {
		return role
	}
	return ""
}
