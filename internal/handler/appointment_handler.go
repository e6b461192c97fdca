package handler

import (
	"github.com/gin-gonic/gin"

	"carehub/internal/middleware"
	"carehub/internal/model"
	"carehub/internal/service"
	"carehub/pkg/pagination"
	"carehub/pkg/response"
)

type AppointmentHandler struct {
	appointmentService service.AppointmentService
}

func NewAppointmentHandler(appointmentService service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// Booking and cancelling appointments is a management task; care givers
// still read the list and record outcome details after a visit.
func (h *AppointmentHandler) RegisterRoutes(router *gin.RouterGroup, authenticate gin.HandlerFunc) {
	manage := middleware.RequireRole(model.RoleManager, model.RoleSuperuser)

	appointments := router.Group("/appointments", authenticate)
	{
		appointments.POST("", manage, h.CreateAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", manage, h.GetAppointment)
		appointments.PUT("/:id", h.UpdateAppointment)
		appointments.DELETE("/:id", manage, h.DeleteAppointment)
	}
}

func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req service.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}
	appointment, err := h.appointmentService.CreateAppointment(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, "Failed to create appointment", err)
		return
	}
	response.Created(c, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	params := pagination.Parse(c)
	patientID, ok := uuidQuery(c, "patientId")
	if !ok {
		return
	}
	appointments, total, err := h.appointmentService.ListAppointments(c.Request.Context(), patientID, c.Query("type"), params.Offset, params.Size)
	if err != nil {
		response.Fail(c, "Failed to list appointments", err)
		return
	}
	response.OK(c, "Appointments fetched successfully", listEnvelope{
		Items: appointments,
		Meta:  pagination.Meta{PageNumber: params.Page, PageSize: params.Size, Total: total},
	})
}

func (h *AppointmentHandler) GetAppointment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	appointment, err := h.appointmentService.GetAppointment(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, "Failed to fetch appointment", err)
		return
	}
	response.OK(c, "Appointment fetched successfully", appointment)
}

func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req service.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request payload", response.BindError(err))
		return
	}
	appointment, err := h.appointmentService.UpdateAppointment(c.Request.Context(), id, req)
	if err != nil {
		response.Fail(c, "Failed to update appointment", err)
		return
	}
	response.OK(c, "Appointment updated successfully", appointment)
}

func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.appointmentService.DeleteAppointment(c.Request.Context(), id); err != nil {
		response.Fail(c, "Failed to delete appointment", err)
		return
	}
	response.OK(c, "Appointment deleted successfully", nil)
}
