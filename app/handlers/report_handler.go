package handlers

import (
	"context"
	"log"
	"time"

	"github.com/adwave/asp-platform/app/dto"
	"github.com/adwave/asp-platform/app/middleware"
	businessflow "github.com/adwave/asp-platform/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

const reportDateLayout = "2006-01-02"

// ReportHandlerInterface defines the contract for reporting handlers
type ReportHandlerInterface interface {
	Summary(c fiber.Ctx) error
}

// ReportHandler handles performance report HTTP requests
type ReportHandler struct {
	reportFlow businessflow.ReportFlow
	validator  *validator.Validate
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportFlow businessflow.ReportFlow) *ReportHandler {
	return &ReportHandler{
		reportFlow: reportFlow,
		validator:  validator.New(),
	}
}

func (h *ReportHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *ReportHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Summary handles the performance summary report
func (h *ReportHandler) Summary(c fiber.Ctx) error {
	principal, ok := middleware.GetPrincipalFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	var req dto.SummaryReportRequest
	if err := c.Bind().Query(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", err.Error())
	}

	// Validate request
	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	from, to, err := parseReportWindow(req.From, req.To)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid date range", "INVALID_DATE_RANGE", err.Error())
	}

	// Call business logic with proper context
	result, err := h.reportFlow.Summary(h.createRequestContext(c, "/api/v1/reports/summary"), principal, from, to)
	if err != nil {
		// Handle specific business errors
		if businessflow.IsStartDateAfterEndDate(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Start date cannot be after end date", "INVALID_DATE_RANGE", nil)
		}
		if businessflow.IsAccessDenied(err) {
			return h.ErrorResponse(c, fiber.StatusForbidden, "Access denied", "ACCESS_DENIED", nil)
		}

		log.Println("Summary report failed", err)
		// Handle generic business errors
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate report", "REPORT_FAILED", nil)
	}

	if req.From != "" {
		result.From = &req.From
	}
	if req.To != "" {
		result.To = &req.To
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Report generated", result)
}

func (h *ReportHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

// parseReportWindow turns inclusive calendar dates into a half-open UTC interval.
// The end date covers the whole day, so the upper bound is the next midnight.
func parseReportWindow(fromStr, toStr string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if fromStr != "" {
		t, err := time.ParseInLocation(reportDateLayout, fromStr, time.UTC)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if toStr != "" {
		t, err := time.ParseInLocation(reportDateLayout, toStr, time.UTC)
		if err != nil {
			return nil, nil, err
		}
		end := t.AddDate(0, 0, 1)
		to = &end
	}
	return from, to, nil
}
