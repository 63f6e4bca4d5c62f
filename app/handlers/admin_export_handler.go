package handlers

import (
	"context"
	"log"
	"time"

	"github.com/adwave/asp-platform/app/dto"
	"github.com/adwave/asp-platform/app/middleware"
	businessflow "github.com/adwave/asp-platform/business_flow"
	"github.com/gofiber/fiber/v3"
)

// AdminExportHandlerInterface defines the contract for admin export handlers
type AdminExportHandlerInterface interface {
	ExportConversions(c fiber.Ctx) error
}

// AdminExportHandler handles admin data export HTTP requests
type AdminExportHandler struct {
	exportFlow businessflow.AdminExportFlow
}

// NewAdminExportHandler creates a new admin export handler
func NewAdminExportHandler(exportFlow businessflow.AdminExportFlow) *AdminExportHandler {
	return &AdminExportHandler{exportFlow: exportFlow}
}

func (h *AdminExportHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

// ExportConversions streams an Excel workbook of conversions in the window
func (h *AdminExportHandler) ExportConversions(c fiber.Ctx) error {
	principal, ok := middleware.GetPrincipalFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	from, to, err := parseReportWindow(c.Query("from"), c.Query("to"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid date range", "INVALID_DATE_RANGE", err.Error())
	}

	filename, data, err := h.exportFlow.DownloadConversionsExcel(h.createRequestContext(c, "/api/v1/admin/conversions/export"), principal, from, to)
	if err != nil {
		if businessflow.IsAccessDenied(err) {
			return h.ErrorResponse(c, fiber.StatusForbidden, "Admin access required", "ACCESS_DENIED", nil)
		}
		if businessflow.IsStartDateAfterEndDate(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Start date cannot be after end date", "INVALID_DATE_RANGE", nil)
		}

		log.Println("Export conversions failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to export conversions", "EXPORT_FAILED", nil)
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

func (h *AdminExportHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 60*time.Second)
}
