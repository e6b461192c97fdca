package handler

import (
	"github.com/gin-gonic/gin"

	"carehub/internal/middleware"
	"carehub/internal/model"
	"carehub/internal/service"
	"carehub/pkg/pagination"
	"carehub/pkg/response"
)

type GroceryHandler struct {
	groceryService service.GroceryService
}

func NewGroceryHandler(groceryService service.GroceryService) *GroceryHandler {
	return &GroceryHandler{groceryService: groceryService}
}

func (h *GroceryHandler) RegisterRoutes(router *gin.RouterGroup, authenticate gin.HandlerFunc) {
	resolve := middleware.RequireRole(model.RoleManager, model.RoleSuperuser)

	groceries := router.Group("/groceries", authenticate)
	{
		groceries.POST("", h.CreateGrocery)
		groceries.GET("", h.ListGroceries)
		groceries.GET("/:id", h.GetGrocery)
		groceries.PATCH("/:id/status", resolve, h.ResolveGrocery)
		groceries.DELETE("/:id", resolve, h.DeleteGrocery)
	}
}

func (h *GroceryHandler) CreateGrocery(c *gin.Context) {
	var req service.CreateGroceryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}
	grocery, err := h.groceryService.CreateGrocery(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		response.Fail(c, "Failed to create grocery request", err)
		return
	}
	response.Created(c, "Grocery request created successfully", grocery)
}

func (h *GroceryHandler) ListGroceries(c *gin.Context) {
	params := pagination.Parse(c)
	staffID, ok := requestScope(c)
	if !ok {
		return
	}
	groceries, total, err := h.groceryService.ListGroceries(c.Request.Context(), staffID, c.Query("status"), params.Offset, params.Size)
	if err != nil {
		response.Fail(c, "Failed to list grocery requests", err)
		return
	}
	response.OK(c, "Grocery requests fetched successfully", listEnvelope{
		Items: groceries,
		Meta:  pagination.Meta{PageNumber: params.Page, PageSize: params.Size, Total: total},
	})
}

func (h *GroceryHandler) GetGrocery(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	grocery, err := h.groceryService.GetGrocery(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, "Failed to fetch grocery request", err)
		return
	}
	response.OK(c, "Grocery request fetched successfully", grocery)
}

func (h *GroceryHandler) ResolveGrocery(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req service.ResolveGroceryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}
	grocery, err := h.groceryService.ResolveGrocery(c.Request.Context(), id, req)
	if err != nil {
		response.Fail(c, "Failed to resolve grocery request", err)
		return
	}
	response.OK(c, "Grocery request resolved successfully", grocery)
}

func (h *GroceryHandler) DeleteGrocery(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.groceryService.DeleteGrocery(c.Request.Context(), id); err != nil {
		response.Fail(c, "Failed to delete grocery request", err)
		return
	}
	response.OK(c, "Grocery request deleted successfully", nil)
}
