package handler

import (
	"github.com/YasinKhilji/ims-project/internal/middleware"
	"github.com/YasinKhilji/ims-project/internal/model"
	"github.com/YasinKhilji/ims-project/internal/service"
	"github.com/YasinKhilji/ims-project/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductHandler struct {
	invService service.InventoryService
}

func NewProductHandler(invService service.InventoryService) *ProductHandler {
	return &ProductHandler{invService: invService}
}

// Create adds a product
// POST /api/v1/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return response.BadRequest(c, "invalid JSON")
	}

	if err := h.invService.CreateProduct(&product, middleware.UserID(c)); err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, "product created", product)
}

// Update edits a product
// PUT /api/v1/products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "invalid product ID")
	}

	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return response.BadRequest(c, "invalid JSON")
	}

	updated, err := h.invService.UpdateProduct(productID, &product, middleware.UserID(c))
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "product updated", updated)
}

// Delete soft-deletes a product
// DELETE /api/v1/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "invalid product ID")
	}

	if err := h.invService.DeleteProduct(productID, middleware.UserID(c)); err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "product deleted", nil)
}

// GetAll lists live products
// GET /api/v1/products
func (h *ProductHandler) GetAll(c *fiber.Ctx) error {
	products, err := h.invService.GetAllProducts()
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(products)
}

// Get returns one product
// GET /api/v1/products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "invalid product ID")
	}

	product, err := h.invService.GetProduct(productID)
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(product)
}

// LowStock lists products at or below their reorder threshold
// GET /api/v1/products/low-stock
func (h *ProductHandler) LowStock(c *fiber.Ctx) error {
	products, err := h.invService.GetLowStock()
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(products)
}

// UpdateStock applies a direct IN/OUT stock movement
// POST /api/v1/transactions
func (h *ProductHandler) UpdateStock(c *fiber.Ctx) error {
	var req service.UpdateStockRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid JSON")
	}

	ledger, err := h.invService.UpdateStock(&req, middleware.UserID(c))
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, "stock updated", ledger)
}

// GetTransactions lists the stock ledger
// GET /api/v1/transactions
func (h *ProductHandler) GetTransactions(c *fiber.Ctx) error {
	transactions, err := h.invService.GetAllTransactions()
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(transactions)
}

// GetTransaction returns one ledger row
// GET /api/v1/transactions/:id
func (h *ProductHandler) GetTransaction(c *fiber.Ctx) error {
	txID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "invalid transaction ID")
	}

	transaction, err := h.invService.GetTransaction(txID)
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(transaction)
}
