package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"carehub/internal/middleware"
	"carehub/internal/model"
	"carehub/internal/service"
	"carehub/pkg/pagination"
	"carehub/pkg/response"
)

type LeaveHandler struct {
	leaveService service.LeaveService
}

func NewLeaveHandler(leaveService service.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveService: leaveService}
}

func (h *LeaveHandler) RegisterRoutes(router *gin.RouterGroup, authenticate gin.HandlerFunc) {
	resolve := middleware.RequireRole(model.RoleManager, model.RoleSuperuser)

	leaves := router.Group("/leaves", authenticate)
	{
		leaves.POST("", h.CreateLeave)
		leaves.GET("", h.ListLeaves)
		leaves.GET("/:id", h.GetLeave)
		leaves.PATCH("/:id/status", resolve, h.ResolveLeave)
		leaves.DELETE("/:id", resolve, h.DeleteLeave)
	}
}

// requestScope restricts care givers to their own requests; managers and
// superusers may filter by any staff member.
func requestScope(c *gin.Context) (*uuid.UUID, bool) {
	user := middleware.CurrentUser(c)
	if user.Role == model.RoleCareGiver {
		return &user.ID, true
	}
	return uuidQuery(c, "staffId")
}

// CreateLeave files a leave request
// @Summary      Create leave request
// @Description  Files a leave request. The end date must not precede the start date.
// @Tags         leaves
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateLeaveRequest  true  "Leave request"
// @Success      201      {object}  response.Envelope{data=model.Leave}
// @Router       /leaves [post]
func (h *LeaveHandler) CreateLeave(c *gin.Context) {
	var req service.CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}
	leave, err := h.leaveService.CreateLeave(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		response.Fail(c, "Failed to create leave request", err)
		return
	}
	response.Created(c, "Leave request created successfully", leave)
}

func (h *LeaveHandler) ListLeaves(c *gin.Context) {
	params := pagination.Parse(c)
	staffID, ok := requestScope(c)
	if !ok {
		return
	}
	leaves, total, err := h.leaveService.ListLeaves(c.Request.Context(), staffID, c.Query("status"), params.Offset, params.Size)
	if err != nil {
		response.Fail(c, "Failed to list leave requests", err)
		return
	}
	response.OK(c, "Leave requests fetched successfully", listEnvelope{
		Items: leaves,
		Meta:  pagination.Meta{PageNumber: params.Page, PageSize: params.Size, Total: total},
	})
}

func (h *LeaveHandler) GetLeave(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	leave, err := h.leaveService.GetLeave(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, "Failed to fetch leave request", err)
		return
	}
	response.OK(c, "Leave request fetched successfully", leave)
}

func (h *LeaveHandler) ResolveLeave(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req service.ResolveLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}
	leave, err := h.leaveService.ResolveLeave(c.Request.Context(), id, req)
	if err != nil {
		response.Fail(c, "Failed to resolve leave request", err)
		return
	}
	response.OK(c, "Leave request resolved successfully", leave)
}

func (h *LeaveHandler) DeleteLeave(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.leaveService.DeleteLeave(c.Request.Context(), id); err != nil {
		response.Fail(c, "Failed to delete leave request", err)
		return
	}
	response.OK(c, "Leave request deleted successfully", nil)
}
