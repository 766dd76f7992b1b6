package handlers

import (
	"bookstore/internal/common"
	"bookstore/internal/middleware"
	"bookstore/internal/models"
	"bookstore/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles authentication-related HTTP requests
type AuthHandlers struct {
	authService services.AuthService
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(authService services.AuthService) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

// Login handles POST /auth/login
func (h *AuthHandlers) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	token, err := h.authService.Login(c.Request().Context(), &req)
	if err != nil {
		return common.SendFailure(c, "Login failed", err)
	}
	return common.SendSuccess(c, "Login successful", token)
}

// Logout handles POST /auth/logout
func (h *AuthHandlers) Logout(c echo.Context) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	if err := h.authService.Logout(c.Request().Context(), claims); err != nil {
		return common.SendFailure(c, "Logout failed", err)
	}
	return common.SendSuccess(c, "Logged out successfully", nil)
}

// Me handles GET /auth/me
func (h *AuthHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	user, err := h.authService.Me(ctx, userID)
	if err != nil {
		return common.SendFailure(c, "User not found", err)
	}
	return common.SendSuccess(c, "User retrieved successfully", user)
}

// ForgotPassword handles POST /auth/forgot-password. The answer is the same
// whether or not the email is registered.
func (h *AuthHandlers) ForgotPassword(c echo.Context) error {
	var req models.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.authService.ForgotPassword(c.Request().Context(), &req); err != nil {
		return common.SendFailure(c, "Failed to request password reset", err)
	}
	return common.SendSuccess(c, "If the email is registered, a reset link has been sent", nil)
}

// ResetPassword handles POST /auth/reset-password
func (h *AuthHandlers) ResetPassword(c echo.Context) error {
	var req models.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.authService.ResetPassword(c.Request().Context(), &req); err != nil {
		return common.SendFailure(c, "Failed to reset password", err)
	}
	return common.SendSuccess(c, "Password reset successfully", nil)
}
