package handler

import (
	"github.com/gin-gonic/gin"

	"carehub/internal/middleware"
	"carehub/internal/model"
	"carehub/internal/service"
	"carehub/pkg/pagination"
	"carehub/pkg/response"
)

type UtilityHandler struct {
	utilityService service.UtilityService
}

func NewUtilityHandler(utilityService service.UtilityService) *UtilityHandler {
	return &UtilityHandler{utilityService: utilityService}
}

func (h *UtilityHandler) RegisterRoutes(router *gin.RouterGroup, authenticate gin.HandlerFunc) {
	resolve := middleware.RequireRole(model.RoleManager, model.RoleSuperuser)

	utilities := router.Group("/utilities", authenticate)
	{
		utilities.POST("", h.CreateUtility)
		utilities.GET("", h.ListUtilities)
		utilities.GET("/:id", h.GetUtility)
		utilities.PATCH("/:id/status", resolve, h.ResolveUtility)
		utilities.DELETE("/:id", resolve, h.DeleteUtility)
	}
}

func (h *UtilityHandler) CreateUtility(c *gin.Context) {
	var req service.CreateUtilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}
	utility, err := h.utilityService.CreateUtility(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		response.Fail(c, "Failed to create utility request", err)
		return
	}
	response.Created(c, "Utility request created successfully", utility)
}

func (h *UtilityHandler) ListUtilities(c *gin.Context) {
	params := pagination.Parse(c)
	staffID, ok := requestScope(c)
	if !ok {
		return
	}
	utilities, total, err := h.utilityService.ListUtilities(c.Request.Context(), staffID, c.Query("status"), params.Offset, params.Size)
	if err != nil {
		response.Fail(c, "Failed to list utility requests", err)
		return
	}
	response.OK(c, "Utility requests fetched successfully", listEnvelope{
		Items: utilities,
		Meta:  pagination.Meta{PageNumber: params.Page, PageSize: params.Size, Total: total},
	})
}

func (h *UtilityHandler) GetUtility(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	utility, err := h.utilityService.GetUtility(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, "Failed to fetch utility request", err)
		return
	}
	response.OK(c, "Utility request fetched successfully", utility)
}

func (h *UtilityHandler) ResolveUtility(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req service.ResolveUtilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}
	utility, err := h.utilityService.ResolveUtility(c.Request.Context(), id, req)
	if err != nil {
		response.Fail(c, "Failed to resolve utility request", err)
		return
	}
	response.OK(c, "Utility request resolved successfully", utility)
}

func (h *UtilityHandler) DeleteUtility(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.utilityService.DeleteUtility(c.Request.Context(), id); err != nil {
		response.Fail(c, "Failed to delete utility request", err)
		return
	}
	response.OK(c, "Utility request deleted successfully", nil)
}
