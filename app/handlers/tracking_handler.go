package handlers

import (
	"context"
	"log"
	"time"

	"github.com/adwave/asp-platform/app/dto"
	"github.com/adwave/asp-platform/app/middleware"
	businessflow "github.com/adwave/asp-platform/business_flow"
	"github.com/adwave/asp-platform/config"
	"github.com/adwave/asp-platform/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// TrackingHandlerInterface defines the contract for the public tracking endpoints
type TrackingHandlerInterface interface {
	TrackClick(c fiber.Ctx) error
	ReportConversion(c fiber.Ctx) error
}

// TrackingHandler handles click redirects and conversion postbacks
type TrackingHandler struct {
	clickFlow      businessflow.ClickTrackingFlow
	conversionFlow businessflow.ConversionFlow
	trackingConfig config.TrackingConfig
	validator      *validator.Validate
}

// NewTrackingHandler creates a new tracking handler
func NewTrackingHandler(
	clickFlow businessflow.ClickTrackingFlow,
	conversionFlow businessflow.ConversionFlow,
	trackingConfig config.TrackingConfig,
) *TrackingHandler {
	return &TrackingHandler{
		clickFlow:      clickFlow,
		conversionFlow: conversionFlow,
		trackingConfig: trackingConfig,
		validator:      validator.New(),
	}
}

func (h *TrackingHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *TrackingHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// TrackClick records a visit through a tracking link and redirects to the landing page.
// Any failure redirects to the platform home page without a cookie; the visitor
// never sees an error page.
func (h *TrackingHandler) TrackClick(c fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		c.Redirect().Status(fiber.StatusFound).To(h.trackingConfig.HomeRedirectURL)
		return nil
	}

	req := &businessflow.TrackClickRequest{
		AffiliateCode: code,
		CreativeID:    optionalQuery(c, "cid"),
		SubID1:        optionalQuery(c, "sub1"),
		SubID2:        optionalQuery(c, "sub2"),
		SubID3:        optionalQuery(c, "sub3"),
	}

	metadata := businessflow.NewClientMetadata(h.clientIP(c), c.Get("User-Agent"))
	if referer := c.Get("Referer"); referer != "" {
		metadata.SetRefererURL(referer)
	}

	result, err := h.clickFlow.TrackClick(h.createRequestContext(c, "/track/click"), req, metadata)
	if err != nil {
		// Unknown, unapproved, and paused codes all look the same to the visitor.
		log.Println("Track click failed", err)
		c.Redirect().Status(fiber.StatusFound).To(h.trackingConfig.HomeRedirectURL)
		return nil
	}

	middleware.RecordClickTracked()

	c.Cookie(&fiber.Cookie{
		Name:     result.Cookie.Name,
		Value:    result.Cookie.Value,
		MaxAge:   result.Cookie.MaxAge,
		Path:     result.Cookie.Path,
		HTTPOnly: result.Cookie.HTTPOnly,
		Secure:   result.Cookie.Secure,
		SameSite: result.Cookie.SameSite,
	})
	c.Redirect().Status(fiber.StatusFound).To(result.RedirectURL)
	return nil
}

// ReportConversion handles the advertiser-side conversion postback
func (h *TrackingHandler) ReportConversion(c fiber.Ctx) error {
	var req dto.ReportConversionRequest
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
	metadata := businessflow.NewClientMetadata(h.clientIP(c), c.Get("User-Agent"))

	// Call business logic with proper context
	result, err := h.conversionFlow.ReportConversion(h.createRequestContext(c, "/api/v1/tracking/conversions"), &req, metadata)
	if err != nil {
		// Handle specific business errors
		if businessflow.IsProgramNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Program not found", dto.ErrorProgramNotFound, nil)
		}
		if businessflow.IsNoAttributableClick(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "No attributable click found", dto.ErrorNoAttributableClick, nil)
		}
		if businessflow.IsDuplicateConversion(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Conversion already recorded for this click", dto.ErrorDuplicateConversion, nil)
		}
		if businessflow.IsSaleAmountInvalid(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Sale amount must not be negative", "SALE_AMOUNT_INVALID", nil)
		}

		log.Println("Report conversion failed", err)
		// Handle generic business errors
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to record conversion", "CONVERSION_FAILED", nil)
	}

	middleware.RecordConversionReported(result.Status)

	return h.SuccessResponse(c, fiber.StatusOK, "Conversion recorded", result)
}

// clientIP resolves the visitor address from the edge proxy headers. Behind a
// proxy the peer address is the proxy itself, so it is never recorded.
func (h *TrackingHandler) clientIP(c fiber.Ctx) string {
	return utils.ClientIPFromHeaders(c.Get("X-Forwarded-For"), c.Get("X-Real-IP"))
}

func (h *TrackingHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 10*time.Second)
}

func optionalQuery(c fiber.Ctx, key string) *string {
	if v := c.Query(key); v != "" {
		return &v
	}
	return nil
}
