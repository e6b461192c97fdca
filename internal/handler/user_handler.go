package handler

import (
	"github.com/gin-gonic/gin"

	"carehub/internal/middleware"
	"carehub/internal/model"
	"carehub/internal/service"
	"carehub/pkg/pagination"
	"carehub/pkg/response"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes binds the user endpoints. User creation goes through
// the superuser gate, which passes unauthenticated requests only while
// no active superuser exists yet.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup, authenticate, superuserGate gin.HandlerFunc) {
	router.GET("/me", authenticate, h.GetMe)

	users := router.Group("/users")
	{
		users.POST("", superuserGate, h.CreateUser)
		users.GET("", authenticate, middleware.RequireRole(model.RoleManager, model.RoleSuperuser), h.ListUsers)
		users.GET("/:id", authenticate, middleware.RequireRole(model.RoleSuperuser), h.GetUserByID)
		users.PUT("/:id", authenticate, h.UpdateUser)
		users.DELETE("/:id", authenticate, middleware.RequireRole(model.RoleSuperuser), h.DeleteUser)
	}
}

// CreateUser registers a staff account
// @Summary      Create user
// @Description  Registers a staff account. The email doubles as the username; a generated password is emailed. While no active superuser exists this endpoint is open so the first superuser can be created.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateUserRequest  true  "User details"
// @Success      201      {object}  response.Envelope{data=service.UserResponse}
// @Failure      400      {object}  response.Envelope
// @Failure      409      {object}  response.Envelope
// @Router       /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, "Failed to create user", err)
		return
	}
	response.Created(c, "User created successfully", user)
}

// GetMe returns the authenticated user
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope{data=service.UserResponse}
// @Router       /me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	res, err := h.userService.GetUserByID(c.Request.Context(), user.ID)
	if err != nil {
		response.Fail(c, "Failed to fetch user", err)
		return
	}
	response.OK(c, "User fetched successfully", res)
}

// ListUsers returns a page of staff accounts
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        pageNumber  query  int     false  "Page number (default 1)"
// @Param        pageSize    query  int     false  "Page size (default 5, max 50)"
// @Param        role        query  string  false  "Filter by role"
// @Param        status      query  string  false  "Filter by status"
// @Param        branchId    query  string  false  "Filter by branch"
// @Success      200  {object}  response.Envelope
// @Router       /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	params := pagination.Parse(c)
	branchID, ok := uuidQuery(c, "branchId")
	if !ok {
		return
	}

	query := service.ListUsersQuery{
		Role:     c.Query("role"),
		Status:   c.Query("status"),
		BranchID: branchID,
	}
	users, total, err := h.userService.ListUsers(c.Request.Context(), query, params.Offset, params.Size)
	if err != nil {
		response.Fail(c, "Failed to list users", err)
		return
	}
	response.OK(c, "Users fetched successfully", listEnvelope{
		Items: users,
		Meta:  pagination.Meta{PageNumber: params.Page, PageSize: params.Size, Total: total},
	})
}

// GetUserByID fetches one account
// @Summary      Get user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Envelope{data=service.UserResponse}
// @Failure      404  {object}  response.Envelope
// @Router       /users/{id} [get]
func (h *UserHandler) GetUserByID(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	user, err := h.userService.GetUserByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, "Failed to fetch user", err)
		return
	}
	response.OK(c, "User fetched successfully", user)
}

// UpdateUser edits an account
// @Summary      Update user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                     true  "User ID"
// @Param        payload  body      service.UpdateUserRequest  true  "Changes"
// @Success      200      {object}  response.Envelope{data=service.UserResponse}
// @Router       /users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req service.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		response.Fail(c, "Failed to update user", err)
		return
	}
	response.OK(c, "User updated successfully", user)
}

// DeleteUser removes an account
// @Summary      Delete user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Envelope
// @Router       /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		response.Fail(c, "Failed to delete user", err)
		return
	}
	response.OK(c, "User deleted successfully", nil)
}
