package handler

import (
	"github.com/YasinKhilji/ims-project/internal/middleware"
	"github.com/YasinKhilji/ims-project/internal/service"
	"github.com/YasinKhilji/ims-project/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	notifService service.NotificationService
}

func NewNotificationHandler(notifService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

// List returns the caller's most recent notifications
// GET /api/v1/notifications?limit=N
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", service.DefaultNotificationLimit)

	notifications, err := h.notifService.ListRecent(middleware.UserID(c), limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load notifications"})
	}

	return c.JSON(fiber.Map{"notifications": notifications})
}

// UnreadCount returns the caller's unread notification count
// GET /api/v1/notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	count, err := h.notifService.UnreadCount(middleware.UserID(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to count notifications"})
	}

	return c.JSON(fiber.Map{"count": count})
}

// MarkRead flips the read flag and returns the related entity, when any, so
// the client can navigate to it
// POST /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	notificationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "invalid notification ID")
	}

	related, err := h.notifService.MarkRead(notificationID, middleware.UserID(c))
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "notification marked as read", fiber.Map{"related_entity": related})
}
