package handler

import (
	"github.com/gin-gonic/gin"

	"carehub/internal/middleware"
	"carehub/internal/model"
	"carehub/internal/service"
	"carehub/pkg/pagination"
	"carehub/pkg/response"
)

type IncidentHandler struct {
	incidentService service.IncidentService
}

func NewIncidentHandler(incidentService service.IncidentService) *IncidentHandler {
	return &IncidentHandler{incidentService: incidentService}
}

func (h *IncidentHandler) RegisterRoutes(router *gin.RouterGroup, authenticate gin.HandlerFunc) {
	resolve := middleware.RequireRole(model.RoleManager, model.RoleSuperuser)

	incidents := router.Group("/incidents", authenticate)
	{
		incidents.POST("", h.CreateIncident)
		incidents.GET("", h.ListIncidents)
		incidents.GET("/:id", h.GetIncident)
		incidents.PUT("/:id", resolve, h.UpdateIncident)
		incidents.DELETE("/:id", resolve, h.DeleteIncident)
	}
}

func (h *IncidentHandler) CreateIncident(c *gin.Context) {
	var req service.CreateIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}
	incident, err := h.incidentService.CreateIncident(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		response.Fail(c, "Failed to create incident", err)
		return
	}
	response.Created(c, "Incident created successfully", incident)
}

func (h *IncidentHandler) ListIncidents(c *gin.Context) {
	params := pagination.Parse(c)
	staffID, ok := requestScope(c)
	if !ok {
		return
	}
	incidents, total, err := h.incidentService.ListIncidents(c.Request.Context(), staffID, c.Query("status"), params.Offset, params.Size)
	if err != nil {
		response.Fail(c, "Failed to list incidents", err)
		return
	}
	response.OK(c, "Incidents fetched successfully", listEnvelope{
		Items: incidents,
		Meta:  pagination.Meta{PageNumber: params.Page, PageSize: params.Size, Total: total},
	})
}

func (h *IncidentHandler) GetIncident(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	incident, err := h.incidentService.GetIncident(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, "Failed to fetch incident", err)
		return
	}
	response.OK(c, "Incident fetched successfully", incident)
}

func (h *IncidentHandler) UpdateIncident(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req service.UpdateIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}
	incident, err := h.incidentService.UpdateIncident(c.Request.Context(), id, req)
	if err != nil {
		response.Fail(c, "Failed to update incident", err)
		return
	}
	response.OK(c, "Incident updated successfully", incident)
}

func (h *IncidentHandler) DeleteIncident(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.incidentService.DeleteIncident(c.Request.Context(), id); err != nil {
		response.Fail(c, "Failed to delete incident", err)
		return
	}
	response.OK(c, "Incident deleted successfully", nil)
}
