package handler

import (
	"github.com/gin-gonic/gin"

	"carehub/internal/middleware"
	"carehub/internal/model"
	"carehub/internal/service"
	"carehub/pkg/pagination"
	"carehub/pkg/response"
)

type ProgressHandler struct {
	progressService service.ProgressService
}

func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

func (h *ProgressHandler) RegisterRoutes(router *gin.RouterGroup, authenticate gin.HandlerFunc) {
	review := middleware.RequireRole(model.RoleManager, model.RoleSuperuser)

	updates := router.Group("/progress-updates", authenticate)
	{
		updates.POST("", h.CreateProgress)
		updates.GET("", h.ListProgress)
		updates.GET("/:id", h.GetProgress)
		updates.PUT("/:id", h.UpdateProgress)
		updates.PATCH("/:id/status", review, h.ReviewProgress)
		updates.DELETE("/:id", review, h.DeleteProgress)
	}
}

// CreateProgress files a weekly or monthly note
// @Summary      Create progress update
// @Description  Files a weekly or monthly progress note. One note of each type per resident per period; monthly notes require a weight.
// @Tags         progress-updates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateProgressRequest  true  "Progress note"
// @Success      201      {object}  response.Envelope{data=model.ProgressUpdate}
// @Failure      409      {object}  response.Envelope
// @Router       /progress-updates [post]
func (h *ProgressHandler) CreateProgress(c *gin.Context) {
	var req service.CreateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}
	update, err := h.progressService.CreateProgress(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		response.Fail(c, "Failed to create progress update", err)
		return
	}
	response.Created(c, "Progress update created successfully", update)
}

func (h *ProgressHandler) ListProgress(c *gin.Context) {
	params := pagination.Parse(c)
	patientID, ok := uuidQuery(c, "patientId")
	if !ok {
		return
	}
	careGiverID, ok := uuidQuery(c, "careGiverId")
	if !ok {
		return
	}

	query := service.ListProgressQuery{
		PatientID:   patientID,
		CareGiverID: careGiverID,
		Status:      c.Query("status"),
		Type:        c.Query("type"),
	}
	updates, total, err := h.progressService.ListProgress(c.Request.Context(), query, params.Offset, params.Size)
	if err != nil {
		response.Fail(c, "Failed to list progress updates", err)
		return
	}
	response.OK(c, "Progress updates fetched successfully", listEnvelope{
		Items: updates,
		Meta:  pagination.Meta{PageNumber: params.Page, PageSize: params.Size, Total: total},
	})
}

func (h *ProgressHandler) GetProgress(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	update, err := h.progressService.GetProgress(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, "Failed to fetch progress update", err)
		return
	}
	response.OK(c, "Progress update fetched successfully", update)
}

func (h *ProgressHandler) UpdateProgress(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req service.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}
	update, err := h.progressService.UpdateProgress(c.Request.Context(), id, req)
	if err != nil {
		response.Fail(c, "Failed to update progress update", err)
		return
	}
	response.OK(c, "Progress update updated successfully", update)
}

func (h *ProgressHandler) ReviewProgress(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req service.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}
	update, err := h.progressService.ReviewProgress(c.Request.Context(), middleware.CurrentUser(c), id, req)
	if err != nil {
		response.Fail(c, "Failed to review progress update", err)
		return
	}
	response.OK(c, "Progress update reviewed successfully", update)
}

func (h *ProgressHandler) DeleteProgress(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.progressService.DeleteProgress(c.Request.Context(), id); err != nil {
		response.Fail(c, "Failed to delete progress update", err)
		return
	}
	response.OK(c, "Progress update deleted successfully", nil)
}
