package handlers

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/adwave/asp-platform/app/dto"
	"github.com/adwave/asp-platform/app/middleware"
	businessflow "github.com/adwave/asp-platform/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// PartnershipHandlerInterface defines the contract for partnership handlers
type PartnershipHandlerInterface interface {
	Apply(c fiber.Ctx) error
	Review(c fiber.Ctx) error
}

// PartnershipHandler handles partnership application and review HTTP requests
type PartnershipHandler struct {
	partnershipFlow businessflow.PartnershipFlow
	validator       *validator.Validate
}

// NewPartnershipHandler creates a new partnership handler
func NewPartnershipHandler(partnershipFlow businessflow.PartnershipFlow) *PartnershipHandler {
	return &PartnershipHandler{
		partnershipFlow: partnershipFlow,
		validator:       validator.New(),
	}
}

func (h *PartnershipHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *PartnershipHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Apply handles a publisher's application to a program
func (h *PartnershipHandler) Apply(c fiber.Ctx) error {
	principal, ok := middleware.GetPrincipalFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	var req dto.ApplyPartnershipRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	// Validate request
	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	// Get client information
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	// Call business logic with proper context
	result, err := h.partnershipFlow.Apply(h.createRequestContext(c, "/api/v1/partnerships"), principal, &req, metadata)
	if err != nil {
		// Handle specific business errors
		if businessflow.IsAccessDenied(err) {
			return h.ErrorResponse(c, fiber.StatusForbidden, "Only publishers can apply for partnerships", "ACCESS_DENIED", nil)
		}
		if businessflow.IsProgramNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Program not found", dto.ErrorProgramNotFound, nil)
		}
		if businessflow.IsProgramNotActive(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Program is not active", "PROGRAM_NOT_ACTIVE", nil)
		}
		if businessflow.IsPublisherSiteNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Publisher site not found", "SITE_NOT_FOUND", nil)
		}
		if businessflow.IsPartnershipAlreadyExists(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Partnership already exists for this program", "PARTNERSHIP_EXISTS", nil)
		}

		log.Println("Apply partnership failed", err)
		// Handle generic business errors
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to apply for partnership", "PARTNERSHIP_APPLY_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Partnership application created", result)
}

// Review handles an advertiser's decision on a pending application
func (h *PartnershipHandler) Review(c fiber.Ctx) error {
	principal, ok := middleware.GetPrincipalFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid partnership ID", "INVALID_PARTNERSHIP_ID", nil)
	}

	var req dto.ReviewPartnershipRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	// Validate request
	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	// Get client information
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	// Call business logic with proper context
	result, err := h.partnershipFlow.Review(h.createRequestContext(c, "/api/v1/partnerships/review"), principal, uint(id), &req, metadata)
	if err != nil {
		// Handle specific business errors
		if businessflow.IsAccessDenied(err) {
			return h.ErrorResponse(c, fiber.StatusForbidden, "Only the program's advertiser can review applications", "ACCESS_DENIED", nil)
		}
		if businessflow.IsPartnershipNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Partnership not found", "PARTNERSHIP_NOT_FOUND", nil)
		}
		if businessflow.IsPartnershipNotPending(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Partnership has already been reviewed", "PARTNERSHIP_NOT_PENDING", nil)
		}

		log.Println("Review partnership failed", err)
		// Handle generic business errors
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to review partnership", "PARTNERSHIP_REVIEW_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Partnership reviewed", result)
}

func (h *PartnershipHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}
