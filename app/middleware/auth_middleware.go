// Package middleware contains HTTP middleware functions for request processing
package middleware

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/adwave/asp-platform/app/dto"
	"github.com/adwave/asp-platform/app/services"
	businessflow "github.com/adwave/asp-platform/business_flow"
	"github.com/gofiber/fiber/v3"
)

// AuthMiddleware handles JWT token validation for protected endpoints
type AuthMiddleware struct {
	tokenService services.TokenService
	loginFlow    businessflow.LoginFlow
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(tokenService services.TokenService, loginFlow businessflow.LoginFlow) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
		loginFlow:    loginFlow,
	}
}

// Authenticate validates the bearer token and resolves the caller's principal.
// The principal carries the role profile id that downstream flows dispatch on.
func (m *AuthMiddleware) Authenticate() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Get the Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Success: false,
				Message: "Authorization header is required",
				Error: dto.ErrorDetail{
					Code: "MISSING_AUTHORIZATION_HEADER",
				},
			})
		}

		// Check if the header starts with "Bearer "
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Success: false,
				Message: "Invalid authorization header format. Expected 'Bearer <token>'",
				Error: dto.ErrorDetail{
					Code: "INVALID_AUTHORIZATION_FORMAT",
				},
			})
		}

		// Extract the token (remove "Bearer " prefix)
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Success: false,
				Message: "Access token is required",
				Error: dto.ErrorDetail{
					Code: "MISSING_ACCESS_TOKEN",
				},
			})
		}

		// Validate the token (this already checks for revocation)
		claims, err := m.tokenService.ValidateToken(token)
		if err != nil {
			var errorCode string
			var message string

			// Determine the specific error type
			if errors.Is(err, services.ErrTokenExpired) {
				errorCode = "TOKEN_EXPIRED"
				message = "Access token has expired"
			} else if errors.Is(err, services.ErrTokenInvalid) {
				errorCode = "TOKEN_INVALID"
				message = "Invalid access token"
			} else if errors.Is(err, services.ErrTokenRevoked) {
				errorCode = "TOKEN_REVOKED"
				message = "Access token has been revoked"
			} else {
				errorCode = "TOKEN_VALIDATION_FAILED"
				message = "Token validation failed"
			}

			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Success: false,
				Message: message,
				Error: dto.ErrorDetail{
					Code: errorCode,
				},
			})
		}

		principal, err := m.loginFlow.ResolvePrincipal(context.Background(), claims.UserID, claims.UserType)
		if err != nil {
			if businessflow.IsProfileNotFound(err) || businessflow.IsAccessDenied(err) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
					Success: false,
					Message: "Account profile not found",
					Error:   dto.ErrorDetail{Code: "PROFILE_NOT_FOUND"},
				})
			}
			log.Println("Principal resolution failed", err)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.APIResponse{
				Success: false,
				Message: "Authentication failed",
				Error:   dto.ErrorDetail{Code: "AUTHENTICATION_FAILED"},
			})
		}

		// Store user information in context for downstream handlers
		c.Locals("user_id", claims.UserID)
		c.Locals("user_type", claims.UserType)
		c.Locals("token_id", claims.TokenID)
		c.Locals("principal", principal)

		// Store RequestID for audit logging
		if requestID := c.Get("X-Request-ID"); requestID != "" {
			c.Locals("request_id", requestID)
		}

		// Continue to the next handler
		return c.Next()
	}
}

// RequireUserType rejects authenticated callers whose role is not listed.
// It must run after Authenticate.
func (m *AuthMiddleware) RequireUserType(userTypes ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		principal, ok := GetPrincipalFromContext(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Success: false,
				Message: "Authentication required",
				Error:   dto.ErrorDetail{Code: "AUTHENTICATION_REQUIRED"},
			})
		}
		for _, t := range userTypes {
			if principal.UserType == t {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.APIResponse{
			Success: false,
			Message: "Access denied for this account type",
			Error:   dto.ErrorDetail{Code: "ACCESS_DENIED"},
		})
	}
}

// GetPrincipalFromContext extracts the resolved principal from the request context
func GetPrincipalFromContext(c fiber.Ctx) (*businessflow.Principal, bool) {
	principal, ok := c.Locals("principal").(*businessflow.Principal)
	return principal, ok
}

// GetUserIDFromContext extracts the user ID from the request context
func GetUserIDFromContext(c fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("user_id").(uint)
	return userID, ok
}
