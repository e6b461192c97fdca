package handler

import (
	"github.com/gin-gonic/gin"

	"carehub/internal/middleware"
	"carehub/internal/model"
	"carehub/internal/service"
	"carehub/pkg/response"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes binds the auth endpoints. Login and password reset are
// public; the rest require authentication.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, authenticate gin.HandlerFunc) {
	auth := router.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/reset-password", h.ResetPassword)
		auth.POST("/change-password", authenticate, h.ChangePassword)
		auth.POST("/block-users", authenticate, middleware.RequireRole(model.RoleSuperuser), h.BlockUser)
		auth.POST("/unblock-users", authenticate, middleware.RequireRole(model.RoleSuperuser), h.UnblockUser)
	}
}

// Login authenticates a user
// @Summary      Login
// @Description  Authenticates by username and password, returning a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.LoginRequest  true  "Credentials"
// @Success      200      {object}  response.Envelope{data=service.LoginResponse}
// @Failure      401      {object}  response.Envelope
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}

	res, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, "Login failed", err)
		return
	}
	response.OK(c, "Login successful", res)
}

// ChangePassword updates the caller's own password
// @Summary      Change password
// @Description  Verifies the current password before storing a new one
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.ChangePasswordRequest  true  "Passwords"
// @Success      200      {object}  response.Envelope
// @Failure      401      {object}  response.Envelope
// @Router       /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req service.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.authService.ChangePassword(c.Request.Context(), user.ID, req); err != nil {
		response.Fail(c, "Password change failed", err)
		return
	}
	response.OK(c, "Password changed successfully", nil)
}

// ResetPassword emails a fresh password
// @Summary      Reset password
// @Description  Generates a new password and emails it to the account holder. The response does not reveal whether the username exists.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.ResetPasswordRequest  true  "Username"
// @Success      200      {object}  response.Envelope
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req service.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), req); err != nil {
		response.Fail(c, "Password reset failed", err)
		return
	}
	response.OK(c, "If the account exists, a new password has been sent", nil)
}

// BlockUser blocks an account
// @Summary      Block user
// @Description  Sets an account to blocked. Self-blocking is rejected.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.BlockUserRequest  true  "Username"
// @Success      200      {object}  response.Envelope{data=service.UserResponse}
// @Failure      403      {object}  response.Envelope
// @Router       /auth/block-users [post]
func (h *AuthHandler) BlockUser(c *gin.Context) {
	var req service.BlockUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}

	user, err := h.authService.BlockUser(c.Request.Context(), middleware.CurrentUser(c), req.Username)
	if err != nil {
		response.Fail(c, "Failed to block user", err)
		return
	}
	response.OK(c, "User blocked successfully", user)
}

// UnblockUser re-activates an account
// @Summary      Unblock user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.BlockUserRequest  true  "Username"
// @Success      200      {object}  response.Envelope{data=service.UserResponse}
// @Router       /auth/unblock-users [post]
func (h *AuthHandler) UnblockUser(c *gin.Context) {
	var req service.BlockUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}

	user, err := h.authService.UnblockUser(c.Request.Context(), req.Username)
	if err != nil {
		response.Fail(c, "Failed to unblock user", err)
		return
	}
	response.OK(c, "User unblocked successfully", user)
}
