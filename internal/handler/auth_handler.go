package handler

import (
	"github.com/YasinKhilji/ims-project/internal/middleware"
	"github.com/YasinKhilji/ims-project/internal/service"
	"github.com/YasinKhilji/ims-project/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles user authentication
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid JSON")
	}

	if req.Username == "" || req.Password == "" {
		return response.BadRequest(c, "username and password are required")
	}

	resp, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "logged in", resp)
}

// Logout records the logout in the audit trail
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(middleware.UserID(c)); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "logged out", nil)
}

// Register creates a pending account awaiting admin approval
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid JSON")
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, "registration successful, account pending admin approval", user.ToResponse())
}

// Approve activates a pending account
// POST /api/v1/users/:id/approve
func (h *AuthHandler) Approve(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "invalid user ID")
	}

	if err := h.authService.Approve(userID, middleware.UserID(c)); err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "user approved", nil)
}
