package handler

import (
	"github.com/gin-gonic/gin"

	"carehub/internal/middleware"
	"carehub/internal/model"
	"carehub/internal/service"
	"carehub/pkg/pagination"
	"carehub/pkg/response"
)

type VitalHandler struct {
	vitalService service.VitalService
}

func NewVitalHandler(vitalService service.VitalService) *VitalHandler {
	return &VitalHandler{vitalService: vitalService}
}

func (h *VitalHandler) RegisterRoutes(router *gin.RouterGroup, authenticate gin.HandlerFunc) {
	review := middleware.RequireRole(model.RoleManager, model.RoleSuperuser)

	vitals := router.Group("/vitals", authenticate)
	{
		vitals.POST("", h.CreateVital)
		vitals.GET("", h.ListVitals)
		vitals.GET("/:id", h.GetVital)
		vitals.PUT("/:id", h.UpdateVital)
		vitals.PATCH("/:id/status", review, h.ReviewVital)
		vitals.DELETE("/:id", review, h.DeleteVital)
	}
}

// CreateVital files the day's vital reading
// @Summary      Create vital reading
// @Description  Files a vital-signs reading. At most one per resident per calendar day.
// @Tags         vitals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateVitalRequest  true  "Vital reading"
// @Success      201      {object}  response.Envelope{data=model.Vital}
// @Failure      409      {object}  response.Envelope
// @Router       /vitals [post]
func (h *VitalHandler) CreateVital(c *gin.Context) {
	var req service.CreateVitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}
	vital, err := h.vitalService.CreateVital(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		response.Fail(c, "Failed to create vital", err)
		return
	}
	response.Created(c, "Vital created successfully", vital)
}

func (h *VitalHandler) ListVitals(c *gin.Context) {
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
	vitals, total, err := h.vitalService.ListVitals(c.Request.Context(), query, params.Offset, params.Size)
	if err != nil {
		response.Fail(c, "Failed to list vitals", err)
		return
	}
	response.OK(c, "Vitals fetched successfully", listEnvelope{
		Items: vitals,
		Meta:  pagination.Meta{PageNumber: params.Page, PageSize: params.Size, Total: total},
	})
}

func (h *VitalHandler) GetVital(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	vital, err := h.vitalService.GetVital(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, "Failed to fetch vital", err)
		return
	}
	response.OK(c, "Vital fetched successfully", vital)
}

func (h *VitalHandler) UpdateVital(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req service.UpdateVitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}
	vital, err := h.vitalService.UpdateVital(c.Request.Context(), id, req)
	if err != nil {
		response.Fail(c, "Failed to update vital", err)
		return
	}
	response.OK(c, "Vital updated successfully", vital)
}

func (h *VitalHandler) ReviewVital(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req service.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}
	vital, err := h.vitalService.ReviewVital(c.Request.Context(), middleware.CurrentUser(c), id, req)
	if err != nil {
		response.Fail(c, "Failed to review vital", err)
		return
	}
	response.OK(c, "Vital reviewed successfully", vital)
}

func (h *VitalHandler) DeleteVital(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.vitalService.DeleteVital(c.Request.Context(), id); err != nil {
		response.Fail(c, "Failed to delete vital", err)
		return
	}
	response.OK(c, "Vital deleted successfully", nil)
}
