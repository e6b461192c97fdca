package handler

import (
	"github.com/gin-gonic/gin"

	"carehub/internal/middleware"
	"carehub/internal/model"
	"carehub/internal/service"
	"carehub/pkg/pagination"
	"carehub/pkg/response"
)

type MedicationHandler struct {
	medicationService service.MedicationService
}

func NewMedicationHandler(medicationService service.MedicationService) *MedicationHandler {
	return &MedicationHandler{medicationService: medicationService}
}

func (h *MedicationHandler) RegisterRoutes(router *gin.RouterGroup, authenticate gin.HandlerFunc) {
	manage := middleware.RequireRole(model.RoleManager, model.RoleSuperuser)

	medications := router.Group("/medications", authenticate)
	{
		medications.POST("", manage, h.CreateMedication)
		medications.GET("", h.ListMedications)
		medications.GET("/:id", h.GetMedication)
		medications.PUT("/:id", manage, h.UpdateMedication)
		medications.DELETE("/:id", manage, h.DeleteMedication)
	}

	admins := router.Group("/medication-administrations", authenticate)
	{
		admins.POST("", h.CreateAdministration)
		admins.GET("", h.ListAdministrations)
		admins.GET("/:id", h.GetAdministration)
		admins.PATCH("/:id/status", manage, h.ReviewAdministration)
		admins.DELETE("/:id", manage, h.DeleteAdministration)
	}
}

// CreateMedication attaches a prescription to a resident
// @Summary      Create medication
// @Tags         medications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateMedicationRequest  true  "Prescription"
// @Success      201      {object}  response.Envelope{data=model.Medication}
// @Router       /medications [post]
func (h *MedicationHandler) CreateMedication(c *gin.Context) {
	var req service.CreateMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}
	medication, err := h.medicationService.CreateMedication(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, "Failed to create medication", err)
		return
	}
	response.Created(c, "Medication created successfully", medication)
}

func (h *MedicationHandler) ListMedications(c *gin.Context) {
	params := pagination.Parse(c)
	patientID, ok := uuidQuery(c, "patientId")
	if !ok {
		return
	}
	medications, total, err := h.medicationService.ListMedications(c.Request.Context(), patientID, c.Query("status"), params.Offset, params.Size)
	if err != nil {
		response.Fail(c, "Failed to list medications", err)
		return
	}
	response.OK(c, "Medications fetched successfully", listEnvelope{
		Items: medications,
		Meta:  pagination.Meta{PageNumber: params.Page, PageSize: params.Size, Total: total},
	})
}

func (h *MedicationHandler) GetMedication(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	medication, err := h.medicationService.GetMedication(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, "Failed to fetch medication", err)
		return
	}
	response.OK(c, "Medication fetched successfully", medication)
}

func (h *MedicationHandler) UpdateMedication(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req service.UpdateMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}
	medication, err := h.medicationService.UpdateMedication(c.Request.Context(), id, req)
	if err != nil {
		response.Fail(c, "Failed to update medication", err)
		return
	}
	response.OK(c, "Medication updated successfully", medication)
}

func (h *MedicationHandler) DeleteMedication(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.medicationService.DeleteMedication(c.Request.Context(), id); err != nil {
		response.Fail(c, "Failed to delete medication", err)
		return
	}
	response.OK(c, "Medication deleted successfully", nil)
}

// CreateAdministration records a day's medication administration
// @Summary      Record administration
// @Description  Records the times a medication was given on one day. One record per resident, medication and day.
// @Tags         medication-administrations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateAdministrationRequest  true  "Administration record"
// @Success      201      {object}  response.Envelope{data=model.MedicationAdministration}
// @Failure      409      {object}  response.Envelope
// @Router       /medication-administrations [post]
func (h *MedicationHandler) CreateAdministration(c *gin.Context) {
	var req service.CreateAdministrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}
	admin, err := h.medicationService.CreateAdministration(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		response.Fail(c, "Failed to record administration", err)
		return
	}
	response.Created(c, "Administration recorded successfully", admin)
}

func (h *MedicationHandler) ListAdministrations(c *gin.Context) {
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
	admins, total, err := h.medicationService.ListAdministrations(c.Request.Context(), query, params.Offset, params.Size)
	if err != nil {
		response.Fail(c, "Failed to list administrations", err)
		return
	}
	response.OK(c, "Administrations fetched successfully", listEnvelope{
		Items: admins,
		Meta:  pagination.Meta{PageNumber: params.Page, PageSize: params.Size, Total: total},
	})
}

func (h *MedicationHandler) GetAdministration(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	admin, err := h.medicationService.GetAdministration(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, "Failed to fetch administration", err)
		return
	}
	response.OK(c, "Administration fetched successfully", admin)
}

func (h *MedicationHandler) ReviewAdministration(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req service.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}
	admin, err := h.medicationService.ReviewAdministration(c.Request.Context(), middleware.CurrentUser(c), id, req)
	if err != nil {
		response.Fail(c, "Failed to review administration", err)
		return
	}
	response.OK(c, "Administration reviewed successfully", admin)
}

func (h *MedicationHandler) DeleteAdministration(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.medicationService.DeleteAdministration(c.Request.Context(), id); err != nil {
		response.Fail(c, "Failed to delete administration", err)
		return
	}
	response.OK(c, "Administration deleted successfully", nil)
}
