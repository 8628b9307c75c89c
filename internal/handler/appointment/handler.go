package appointment

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cuidarpet/cuidarpet-api/internal/authz"
	"github.com/cuidarpet/cuidarpet-api/internal/handler"
	"github.com/cuidarpet/cuidarpet-api/internal/model"
	"github.com/cuidarpet/cuidarpet-api/internal/service/appointment"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	appointments := rg.Group("/appointments")
	{
		appointments.POST("", h.CreateAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.PUT("/:id/status", h.UpdateAppointmentStatus)
		appointments.DELETE("/:id", h.DeleteAppointment)
	}
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	claims, err := authz.CurrentUser(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	apt, err := h.service.Create(c.Request.Context(), claims, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Created(c, apt)
}

func (h *Handler) ListAppointments(c *gin.Context) {
	claims, err := authz.CurrentUser(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	filters, err := parseFilters(c)
	if err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	appointments, err := h.service.List(c.Request.Context(), claims, filters)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.OK(c, appointments)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	claims, err := authz.CurrentUser(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid appointment ID")
		return
	}

	apt, err := h.service.Get(c.Request.Context(), claims, id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.OK(c, apt)
}

func (h *Handler) UpdateAppointmentStatus(c *gin.Context) {
	claims, err := authz.CurrentUser(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid appointment ID")
		return
	}

	var req model.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	apt, err := h.service.UpdateStatus(c.Request.Context(), claims, id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.OK(c, apt)
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	claims, err := authz.CurrentUser(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid appointment ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), claims, id); err != nil {
		handler.Error(c, err)
		return
	}

	handler.NoContent(c)
}

func parseFilters(c *gin.Context) (*model.AppointmentFilters, error) {
	filters := &model.AppointmentFilters{}

	if raw := c.Query("pet_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, errInvalid("pet_id")
		}
		filters.PetID = id
	}
	if raw := c.Query("clinic_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, errInvalid("clinic_id")
		}
		filters.ClinicID = id
	}
	if raw := c.Query("status"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errInvalid("status")
		}
		status := model.AppointmentStatus(n)
		if !status.Valid() {
			return nil, errInvalid("status")
		}
		filters.Status = &status
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, errInvalid("from")
		}
		filters.From = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, errInvalid("to")
		}
		filters.To = t
	}

	return filters, nil
}

func errInvalid(field string) error {
	return fmt.Errorf("invalid %s filter", field)
}
