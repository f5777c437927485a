package handler

import (
	"github.com/YasinKhilji/ims-project/internal/middleware"
	"github.com/YasinKhilji/ims-project/internal/service"
	"github.com/YasinKhilji/ims-project/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create handles order creation with notification fan-out
// POST /api/v1/orders
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var req service.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid JSON")
	}

	order, err := h.orderService.Create(&req, middleware.UserID(c))
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, "order created and notifications sent", order)
}

// Process transitions an order to a terminal status
// POST /api/v1/orders/:id/process
func (h *OrderHandler) Process(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "invalid order ID")
	}

	var req service.ProcessOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid JSON")
	}

	order, err := h.orderService.Process(orderID, &req, middleware.UserID(c))
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "order processed", order)
}

// GetAll lists orders, newest first
// GET /api/v1/orders
func (h *OrderHandler) GetAll(c *fiber.Ctx) error {
	orders, err := h.orderService.GetAll()
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(orders)
}

// Get returns one order with the ledger rows it produced
// GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "invalid order ID")
	}

	detail, err := h.orderService.GetByID(orderID)
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(detail)
}
