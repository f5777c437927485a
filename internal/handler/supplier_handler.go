package handler

import (
	"github.com/YasinKhilji/ims-project/internal/middleware"
	"github.com/YasinKhilji/ims-project/internal/model"
	"github.com/YasinKhilji/ims-project/internal/service"
	"github.com/YasinKhilji/ims-project/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SupplierHandler struct {
	supplierService service.SupplierService
}

func NewSupplierHandler(supplierService service.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// Create adds a supplier
// POST /api/v1/suppliers
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var supplier model.Supplier
	if err := c.BodyParser(&supplier); err != nil {
		return response.BadRequest(c, "invalid JSON")
	}

	if err := h.supplierService.Create(&supplier, middleware.UserID(c)); err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, "supplier created", supplier)
}

// Update edits a supplier
// PUT /api/v1/suppliers/:id
func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	supplierID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "invalid supplier ID")
	}

	var supplier model.Supplier
	if err := c.BodyParser(&supplier); err != nil {
		return response.BadRequest(c, "invalid JSON")
	}

	updated, err := h.supplierService.Update(supplierID, &supplier, middleware.UserID(c))
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "supplier updated", updated)
}

// Delete removes an unreferenced supplier
// DELETE /api/v1/suppliers/:id
func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	supplierID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "invalid supplier ID")
	}

	if err := h.supplierService.Delete(supplierID, middleware.UserID(c)); err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "supplier deleted", nil)
}

// GetAll lists suppliers
// GET /api/v1/suppliers
func (h *SupplierHandler) GetAll(c *fiber.Ctx) error {
	suppliers, err := h.supplierService.GetAll()
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(suppliers)
}

// Get returns a supplier with its products
// GET /api/v1/suppliers/:id
func (h *SupplierHandler) Get(c *fiber.Ctx) error {
	supplierID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "invalid supplier ID")
	}

	supplier, err := h.supplierService.GetByID(supplierID)
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(supplier)
}
