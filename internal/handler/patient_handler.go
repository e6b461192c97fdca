package handler

import (
	"github.com/gin-gonic/gin"

	"carehub/internal/middleware"
	"carehub/internal/model"
	"carehub/internal/service"
	"carehub/pkg/pagination"
	"carehub/pkg/response"
)

type PatientHandler struct {
	patientService service.PatientService
}

func NewPatientHandler(patientService service.PatientService) *PatientHandler {
	return &PatientHandler{patientService: patientService}
}

func (h *PatientHandler) RegisterRoutes(router *gin.RouterGroup, authenticate gin.HandlerFunc) {
	manage := middleware.RequireRole(model.RoleManager, model.RoleSuperuser)

	patients := router.Group("/patients", authenticate)
	{
		patients.POST("", manage, h.CreatePatient)
		patients.GET("", h.ListPatients)
		patients.GET("/:id", h.GetPatient)
		patients.PUT("/:id", manage, h.UpdatePatient)
		patients.DELETE("/:id", manage, h.DeletePatient)
	}
}

// CreatePatient registers a resident
// @Summary      Create patient
// @Description  Registers a resident with their diagnosis, allergies, physician and room assignment
// @Tags         patients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreatePatientRequest  true  "Resident details"
// @Success      201      {object}  response.Envelope{data=model.Patient}
// @Failure      400      {object}  response.Envelope
// @Router       /patients [post]
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req service.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}
	patient, err := h.patientService.CreatePatient(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, "Failed to create patient", err)
		return
	}
	response.Created(c, "Patient created successfully", patient)
}

// ListPatients returns a page of residents
// @Summary      List patients
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Param        pageNumber  query  int     false  "Page number (default 1)"
// @Param        pageSize    query  int     false  "Page size (default 5, max 50)"
// @Param        branchId    query  string  false  "Filter by branch"
// @Success      200  {object}  response.Envelope
// @Router       /patients [get]
func (h *PatientHandler) ListPatients(c *gin.Context) {
	params := pagination.Parse(c)
	branchID, ok := uuidQuery(c, "branchId")
	if !ok {
		return
	}
	patients, total, err := h.patientService.ListPatients(c.Request.Context(), branchID, params.Offset, params.Size)
	if err != nil {
		response.Fail(c, "Failed to list patients", err)
		return
	}
	response.OK(c, "Patients fetched successfully", listEnvelope{
		Items: patients,
		Meta:  pagination.Meta{PageNumber: params.Page, PageSize: params.Size, Total: total},
	})
}

// GetPatient fetches one resident
// @Summary      Get patient
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Patient ID"
// @Success      200  {object}  response.Envelope{data=model.Patient}
// @Failure      404  {object}  response.Envelope
// @Router       /patients/{id} [get]
func (h *PatientHandler) GetPatient(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	patient, err := h.patientService.GetPatient(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, "Failed to fetch patient", err)
		return
	}
	response.OK(c, "Patient fetched successfully", patient)
}

func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req service.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}
	patient, err := h.patientService.UpdatePatient(c.Request.Context(), id, req)
	if err != nil {
		response.Fail(c, "Failed to update patient", err)
		return
	}
	response.OK(c, "Patient updated successfully", patient)
}

func (h *PatientHandler) DeletePatient(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.patientService.DeletePatient(c.Request.Context(), id); err != nil {
		response.Fail(c, "Failed to delete patient", err)
		return
	}
	response.OK(c, "Patient deleted successfully", nil)
}
