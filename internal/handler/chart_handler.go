package handler

import (
	"github.com/gin-gonic/gin"

	"carehub/internal/middleware"
	"carehub/internal/model"
	"carehub/internal/service"
	"carehub/pkg/pagination"
	"carehub/pkg/response"
)

type ChartHandler struct {
	chartService service.ChartService
}

func NewChartHandler(chartService service.ChartService) *ChartHandler {
	return &ChartHandler{chartService: chartService}
}

func (h *ChartHandler) RegisterRoutes(router *gin.RouterGroup, authenticate gin.HandlerFunc) {
	review := middleware.RequireRole(model.RoleManager, model.RoleSuperuser)

	charts := router.Group("/charts", authenticate)
	{
		charts.POST("", h.CreateChart)
		charts.GET("", h.ListCharts)
		charts.GET("/:id", h.GetChart)
		charts.PUT("/:id", h.UpdateChart)
		charts.PATCH("/:id/status", review, h.ReviewChart)
		charts.DELETE("/:id", review, h.DeleteChart)
	}
}

// CreateChart files the day's chart for a resident
// @Summary      Create chart
// @Description  Files a behavioral chart entry. At most one chart per resident per calendar day.
// @Tags         charts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateChartRequest  true  "Chart entry"
// @Success      201      {object}  response.Envelope{data=model.Chart}
// @Failure      409      {object}  response.Envelope
// @Router       /charts [post]
func (h *ChartHandler) CreateChart(c *gin.Context) {
	var req service.CreateChartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}
	chart, err := h.chartService.CreateChart(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		response.Fail(c, "Failed to create chart", err)
		return
	}
	response.Created(c, "Chart created successfully", chart)
}

// ListCharts returns a page of chart entries
// @Summary      List charts
// @Tags         charts
// @Produce      json
// @Security     BearerAuth
// @Param        pageNumber   query  int     false  "Page number"
// @Param        pageSize     query  int     false  "Page size"
// @Param        patientId    query  string  false  "Filter by resident"
// @Param        careGiverId  query  string  false  "Filter by care giver"
// @Param        status       query  string  false  "Filter by status"
// @Success      200  {object}  response.Envelope
// @Router       /charts [get]
func (h *ChartHandler) ListCharts(c *gin.Context) {
	params := pagination.Parse(c)
	patientID, ok := uuidQuery(c, "patientId")
	if !ok {
		return
	}
	careGiverID, ok := uuidQuery(c, "careGiverId")
	if !ok {
		return
	}

	query := service.ListChartsQuery{
		PatientID:   patientID,
		CareGiverID: careGiverID,
		Status:      c.Query("status"),
	}
	charts, total, err := h.chartService.ListCharts(c.Request.Context(), query, params.Offset, params.Size)
	if err != nil {
		response.Fail(c, "Failed to list charts", err)
		return
	}
	response.OK(c, "Charts fetched successfully", listEnvelope{
		Items: charts,
		Meta:  pagination.Meta{PageNumber: params.Page, PageSize: params.Size, Total: total},
	})
}

func (h *ChartHandler) GetChart(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	chart, err := h.chartService.GetChart(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, "Failed to fetch chart", err)
		return
	}
	response.OK(c, "Chart fetched successfully", chart)
}

func (h *ChartHandler) UpdateChart(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req service.UpdateChartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}
	chart, err := h.chartService.UpdateChart(c.Request.Context(), id, req)
	if err != nil {
		response.Fail(c, "Failed to update chart", err)
		return
	}
	response.OK(c, "Chart updated successfully", chart)
}

// ReviewChart approves or declines a chart
// @Summary      Review chart
// @Description  Moves a chart to approved or declined. Declining requires a reason. The filing care giver is notified by email.
// @Tags         charts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                 true  "Chart ID"
// @Param        payload  body      service.ReviewRequest  true  "Review decision"
// @Success      200      {object}  response.Envelope{data=model.Chart}
// @Router       /charts/{id}/status [patch]
func (h *ChartHandler) ReviewChart(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req service.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}
	chart, err := h.chartService.ReviewChart(c.Request.Context(), middleware.CurrentUser(c), id, req)
	if err != nil {
		response.Fail(c, "Failed to review chart", err)
		return
	}
	response.OK(c, "Chart reviewed successfully", chart)
}

func (h *ChartHandler) DeleteChart(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.chartService.DeleteChart(c.Request.Context(), id); err != nil {
		response.Fail(c, "Failed to delete chart", err)
		return
	}
	response.OK(c, "Chart deleted successfully", nil)
}
