package handler

import (
	"time"

	"github.com/YasinKhilji/ims-project/internal/repository"
	"github.com/YasinKhilji/ims-project/internal/service"
	"github.com/YasinKhilji/ims-project/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reportService service.ReportService
	auditRepo     repository.AuditRepository
}

func NewReportHandler(reportService service.ReportService, auditRepo repository.AuditRepository) *ReportHandler {
	return &ReportHandler{reportService: reportService, auditRepo: auditRepo}
}

// GetDashboardStats returns the overview block
// GET /api/v1/dashboard/stats
func (h *ReportHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.reportService.GetDashboardStats()
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(stats)
}

// GetStockMovement returns per-day IN/OUT aggregates
// GET /api/v1/dashboard/stock-movement?days=N
func (h *ReportHandler) GetStockMovement(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)

	movement, err := h.reportService.GetStockMovement(days)
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(movement)
}

// GetSupplierReport returns per-supplier product metrics
// GET /api/v1/reports/suppliers
func (h *ReportHandler) GetSupplierReport(c *fiber.Ctx) error {
	stats, err := h.reportService.GetSupplierReport()
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(stats)
}

// GetSalesReport summarizes outbound movements over a date range
// GET /api/v1/reports/sales?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *ReportHandler) GetSalesReport(c *fiber.Ctx) error {
	end := time.Now()
	start := end.AddDate(0, -1, 0)

	if v := c.Query("start"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return response.BadRequest(c, "invalid start date, use YYYY-MM-DD")
		}
		start = parsed
	}
	if v := c.Query("end"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return response.BadRequest(c, "invalid end date, use YYYY-MM-DD")
		}
		// Include the whole end day
		end = parsed.AddDate(0, 0, 1)
	}

	report, err := h.reportService.GetSalesReport(start, end)
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(report)
}

// GetAuditLog lists recent audit entries
// GET /api/v1/audit-log?limit=N
func (h *ReportHandler) GetAuditLog(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	entries, err := h.auditRepo.FindRecent(limit)
	if err != nil {
		return response.InternalServerError(c, "failed to load audit log")
	}
	return c.JSON(entries)
}
