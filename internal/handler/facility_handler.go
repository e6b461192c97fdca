package handler

import (
	"github.com/gin-gonic/gin"

	"carehub/internal/middleware"
	"carehub/internal/model"
	"carehub/internal/service"
	"carehub/pkg/pagination"
	"carehub/pkg/response"
)

type FacilityHandler struct {
	facilityService service.FacilityService
}

func NewFacilityHandler(facilityService service.FacilityService) *FacilityHandler {
	return &FacilityHandler{facilityService: facilityService}
}

func (h *FacilityHandler) RegisterRoutes(router *gin.RouterGroup, authenticate gin.HandlerFunc) {
	manage := middleware.RequireRole(model.RoleManager, model.RoleSuperuser)

	facilities := router.Group("/facilities", authenticate)
	{
		facilities.POST("", manage, h.CreateFacility)
		facilities.GET("", h.ListFacilities)
		facilities.GET("/:id", h.GetFacility)
		facilities.PUT("/:id", manage, h.UpdateFacility)
		facilities.DELETE("/:id", manage, h.DeleteFacility)
	}

	branches := router.Group("/branches", authenticate)
	{
		branches.POST("", manage, h.CreateBranch)
		branches.GET("", h.ListBranches)
		branches.GET("/:id", h.GetBranch)
		branches.PUT("/:id", manage, h.UpdateBranch)
		branches.DELETE("/:id", manage, h.DeleteBranch)
	}
}

// CreateFacility registers a care home
// @Summary      Create facility
// @Tags         facilities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateFacilityRequest  true  "Facility details"
// @Success      201      {object}  response.Envelope{data=model.Facility}
// @Router       /facilities [post]
func (h *FacilityHandler) CreateFacility(c *gin.Context) {
	var req service.CreateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}
	facility, err := h.facilityService.CreateFacility(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, "Failed to create facility", err)
		return
	}
	response.Created(c, "Facility created successfully", facility)
}

func (h *FacilityHandler) ListFacilities(c *gin.Context) {
	params := pagination.Parse(c)
	facilities, total, err := h.facilityService.ListFacilities(c.Request.Context(), params.Offset, params.Size)
	if err != nil {
		response.Fail(c, "Failed to list facilities", err)
		return
	}
	response.OK(c, "Facilities fetched successfully", listEnvelope{
		Items: facilities,
		Meta:  pagination.Meta{PageNumber: params.Page, PageSize: params.Size, Total: total},
	})
}

func (h *FacilityHandler) GetFacility(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	facility, err := h.facilityService.GetFacility(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, "Failed to fetch facility", err)
		return
	}
	response.OK(c, "Facility fetched successfully", facility)
}

func (h *FacilityHandler) UpdateFacility(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req service.UpdateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}
	facility, err := h.facilityService.UpdateFacility(c.Request.Context(), id, req)
	if err != nil {
		response.Fail(c, "Failed to update facility", err)
		return
	}
	response.OK(c, "Facility updated successfully", facility)
}

func (h *FacilityHandler) DeleteFacility(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.facilityService.DeleteFacility(c.Request.Context(), id); err != nil {
		response.Fail(c, "Failed to delete facility", err)
		return
	}
	response.OK(c, "Facility deleted successfully", nil)
}

// CreateBranch registers a branch under a facility
// @Summary      Create branch
// @Tags         branches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateBranchRequest  true  "Branch details"
// @Success      201      {object}  response.Envelope{data=model.Branch}
// @Router       /branches [post]
func (h *FacilityHandler) CreateBranch(c *gin.Context) {
	var req service.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}
	branch, err := h.facilityService.CreateBranch(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, "Failed to create branch", err)
		return
	}
	response.Created(c, "Branch created successfully", branch)
}

func (h *FacilityHandler) ListBranches(c *gin.Context) {
	params := pagination.Parse(c)
	facilityID, ok := uuidQuery(c, "facilityId")
	if !ok {
		return
	}
	branches, total, err := h.facilityService.ListBranches(c.Request.Context(), facilityID, params.Offset, params.Size)
	if err != nil {
		response.Fail(c, "Failed to list branches", err)
		return
	}
	response.OK(c, "Branches fetched successfully", listEnvelope{
		Items: branches,
		Meta:  pagination.Meta{PageNumber: params.Page, PageSize: params.Size, Total: total},
	})
}

func (h *FacilityHandler) GetBranch(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	branch, err := h.facilityService.GetBranch(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, "Failed to fetch branch", err)
		return
	}
	response.OK(c, "Branch fetched successfully", branch)
}

func (h *FacilityHandler) UpdateBranch(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req service.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}
	branch, err := h.facilityService.UpdateBranch(c.Request.Context(), id, req)
	if err != nil {
		response.Fail(c, "Failed to update branch", err)
		return
	}
	response.OK(c, "Branch updated successfully", branch)
}

func (h *FacilityHandler) DeleteBranch(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.facilityService.DeleteBranch(c.Request.Context(), id); err != nil {
		response.Fail(c, "Failed to delete branch", err)
		return
	}
	response.OK(c, "Branch deleted successfully", nil)
}
