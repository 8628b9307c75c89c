package service

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cuidarpet/cuidarpet-api/internal/authz"
	"github.com/cuidarpet/cuidarpet-api/internal/handler"
	"github.com/cuidarpet/cuidarpet-api/internal/model"
	"github.com/cuidarpet/cuidarpet-api/internal/service/clinic"
)

// Handler exposes the service catalog. The business logic lives in the
// clinic service because a catalog entry never exists apart from its clinic.
type Handler struct {
	service *clinic.Service
}

func NewHandler(service *clinic.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	services := rg.Group("/services")
	{
		services.POST("/clinic/:clinicId", h.CreateService)
		services.GET("/clinic/:clinicId", h.ListServices)
		services.GET("/:id", h.GetService)
		services.PUT("/:id", h.UpdateService)
		services.DELETE("/:id", h.DeleteService)
	}
}

func (h *Handler) CreateService(c *gin.Context) {
	claims, err := authz.CurrentUser(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	clinicID, err := uuid.Parse(c.Param("clinicId"))
	if err != nil {
		handler.BadRequest(c, "invalid clinic ID")
		return
	}

	var req model.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	svc, err := h.service.CreateService(c.Request.Context(), claims, clinicID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Created(c, svc)
}

func (h *Handler) ListServices(c *gin.Context) {
	claims, err := authz.CurrentUser(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	clinicID, err := uuid.Parse(c.Param("clinicId"))
	if err != nil {
		handler.BadRequest(c, "invalid clinic ID")
		return
	}

	services, err := h.service.ListServices(c.Request.Context(), claims, clinicID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.OK(c, services)
}

func (h *Handler) GetService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid service ID")
		return
	}

	svc, err := h.service.GetService(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.OK(c, svc)
}

func (h *Handler) UpdateService(c *gin.Context) {
	claims, err := authz.CurrentUser(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid service ID")
		return
	}

	var req model.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	svc, err := h.service.UpdateService(c.Request.Context(), claims, id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.OK(c, svc)
}

func (h *Handler) DeleteService(c *gin.Context) {
	claims, err := authz.CurrentUser(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid service ID")
		return
	}

	if err := h.service.DeleteService(c.Request.Context(), claims, id); err != nil {
		handler.Error(c, err)
		return
	}

	handler.NoContent(c)
}
