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

// ProgramHandlerInterface defines the contract for program management handlers
type ProgramHandlerInterface interface {
	CreateProgram(c fiber.Ctx) error
}

// ProgramHandler handles advertiser program management HTTP requests
type ProgramHandler struct {
	programFlow businessflow.ProgramFlow
	validator   *validator.Validate
}

// NewProgramHandler creates a new program handler
func NewProgramHandler(programFlow businessflow.ProgramFlow) *ProgramHandler {
	return &ProgramHandler{
		programFlow: programFlow,
		validator:   validator.New(),
	}
}

func (h *ProgramHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *ProgramHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// CreateProgram handles program creation by an advertiser
func (h *ProgramHandler) CreateProgram(c fiber.Ctx) error {
	principal, ok := middleware.GetPrincipalFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	var req dto.CreateProgramRequest
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
	result, err := h.programFlow.CreateProgram(h.createRequestContext(c, "/api/v1/programs"), principal, &req, metadata)
	if err != nil {
		// Handle specific business errors
		if businessflow.IsAccessDenied(err) {
			return h.ErrorResponse(c, fiber.StatusForbidden, "Only advertisers can create programs", "ACCESS_DENIED", nil)
		}
		if businessflow.IsProgramValidation(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Program validation failed", "PROGRAM_VALIDATION_FAILED", err.Error())
		}

		log.Println("Create program failed", err)
		// Handle generic business errors
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create program", "PROGRAM_CREATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Program created", result)
}

func (h *ProgramHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}
