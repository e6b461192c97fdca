package handler

import (
	"github.com/gin-gonic/gin"

	"carehub/internal/service"
	"carehub/pkg/pagination"
	"carehub/pkg/response"
)

type SleepHandler struct {
	sleepService service.SleepService
}

func NewSleepHandler(sleepService service.SleepService) *SleepHandler {
	return &SleepHandler{sleepService: sleepService}
}

// Sleep checks are filed hourly by whoever is on shift, so every
// authenticated role can write them.
func (h *SleepHandler) RegisterRoutes(router *gin.RouterGroup, authenticate gin.HandlerFunc) {
	sleeps := router.Group("/sleeps", authenticate)
	{
		sleeps.POST("", h.CreateSleep)
		sleeps.GET("", h.ListSleeps)
		sleeps.GET("/:id", h.GetSleep)
		sleeps.PUT("/:id", h.UpdateSleep)
		sleeps.DELETE("/:id", h.DeleteSleep)
	}
}

func (h *SleepHandler) CreateSleep(c *gin.Context) {
	var req service.CreateSleepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}
	sleep, err := h.sleepService.CreateSleep(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, "Failed to create sleep entry", err)
		return
	}
	response.Created(c, "Sleep entry created successfully", sleep)
}

func (h *SleepHandler) ListSleeps(c *gin.Context) {
	params := pagination.Parse(c)
	residentID, ok := uuidQuery(c, "residentId")
	if !ok {
		return
	}
	sleeps, total, err := h.sleepService.ListSleeps(c.Request.Context(), residentID, c.Query("dateTaken"), params.Offset, params.Size)
	if err != nil {
		response.Fail(c, "Failed to list sleep entries", err)
		return
	}
	response.OK(c, "Sleep entries fetched successfully", listEnvelope{
		Items: sleeps,
		Meta:  pagination.Meta{PageNumber: params.Page, PageSize: params.Size, Total: total},
	})
}

func (h *SleepHandler) GetSleep(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	sleep, err := h.sleepService.GetSleep(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, "Failed to fetch sleep entry", err)
		return
	}
	response.OK(c, "Sleep entry fetched successfully", sleep)
}

func (h *SleepHandler) UpdateSleep(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req service.UpdateSleepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}
	sleep, err := h.sleepService.UpdateSleep(c.Request.Context(), id, req)
	if err != nil {
		response.Fail(c, "Failed to update sleep entry", err)
		return
	}
	response.OK(c, "Sleep entry updated successfully", sleep)
}

func (h *SleepHandler) DeleteSleep(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.sleepService.DeleteSleep(c.Request.Context(), id); err != nil {
		response.Fail(c, "Failed to delete sleep entry", err)
		return
	}
	response.OK(c, "Sleep entry deleted successfully", nil)
}
