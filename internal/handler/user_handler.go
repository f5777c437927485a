package handler

import (
	"github.com/YasinKhilji/ims-project/internal/middleware"
	"github.com/YasinKhilji/ims-project/internal/service"
	"github.com/YasinKhilji/ims-project/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create handles admin user creation
// POST /api/v1/users
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req service.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid JSON")
	}

	user, err := h.userService.Create(&req, middleware.UserID(c))
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, "user created", user.ToResponse())
}

// Update handles admin user edits
// PUT /api/v1/users/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "invalid user ID")
	}

	var req service.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid JSON")
	}

	user, err := h.userService.Update(userID, &req, middleware.UserID(c))
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "user updated", user.ToResponse())
}

// Delete removes a user
// DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "invalid user ID")
	}

	if err := h.userService.Delete(userID, middleware.UserID(c)); err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "user deleted", nil)
}

// GetAll lists users
// GET /api/v1/users
func (h *UserHandler) GetAll(c *fiber.Ctx) error {
	users, err := h.userService.GetAll()
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(users)
}

// Get returns one user
// GET /api/v1/users/:id
func (h *UserHandler) Get(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "invalid user ID")
	}

	user, err := h.userService.GetByID(userID)
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(user)
}

// GetPending lists accounts awaiting approval
// GET /api/v1/users/pending
func (h *UserHandler) GetPending(c *fiber.Ctx) error {
	users, err := h.userService.GetPending()
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(users)
}
