package handler

import (
	"github.com/gin-gonic/gin"

	"carehub/internal/middleware"
	"carehub/internal/model"
	"carehub/internal/service"
	"carehub/pkg/pagination"
	"carehub/pkg/response"
)

type AssessmentHandler struct {
	assessmentService service.AssessmentService
}

func NewAssessmentHandler(assessmentService service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentService: assessmentService}
}

func (h *AssessmentHandler) RegisterRoutes(router *gin.RouterGroup, authenticate gin.HandlerFunc) {
	manage := middleware.RequireRole(model.RoleManager, model.RoleSuperuser)

	assessments := router.Group("/assessments", authenticate)
	{
		assessments.POST("", manage, h.CreateAssessment)
		assessments.GET("", h.ListAssessments)
		assessments.GET("/:id", h.GetAssessment)
		assessments.PUT("/:id", manage, h.UpdateAssessment)
		assessments.DELETE("/:id", manage, h.DeleteAssessment)
	}
}

func (h *AssessmentHandler) CreateAssessment(c *gin.Context) {
	var req service.CreateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}
	assessment, err := h.assessmentService.CreateAssessment(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, "Failed to create assessment", err)
		return
	}
	response.Created(c, "Assessment created successfully", assessment)
}

func (h *AssessmentHandler) ListAssessments(c *gin.Context) {
	params := pagination.Parse(c)
	residentID, ok := uuidQuery(c, "residentId")
	if !ok {
		return
	}
	assessments, total, err := h.assessmentService.ListAssessments(c.Request.Context(), residentID, params.Offset, params.Size)
	if err != nil {
		response.Fail(c, "Failed to list assessments", err)
		return
	}
	response.OK(c, "Assessments fetched successfully", listEnvelope{
		Items: assessments,
		Meta:  pagination.Meta{PageNumber: params.Page, PageSize: params.Size, Total: total},
	})
}

func (h *AssessmentHandler) GetAssessment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	assessment, err := h.assessmentService.GetAssessment(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, "Failed to fetch assessment", err)
		return
	}
	response.OK(c, "Assessment fetched successfully", assessment)
}

func (h *AssessmentHandler) UpdateAssessment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req service.UpdateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}
	assessment, err := h.assessmentService.UpdateAssessment(c.Request.Context(), id, req)
	if err != nil {
		response.Fail(c, "Failed to update assessment", err)
		return
	}
	response.OK(c, "Assessment updated successfully", assessment)
}

func (h *AssessmentHandler) DeleteAssessment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.assessmentService.DeleteAssessment(c.Request.Context(), id); err != nil {
		response.Fail(c, "Failed to delete assessment", err)
		return
	}
	response.OK(c, "Assessment deleted successfully", nil)
}
