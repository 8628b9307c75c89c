package clinic

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cuidarpet/cuidarpet-api/internal/authz"
	"github.com/cuidarpet/cuidarpet-api/internal/handler"
	"github.com/cuidarpet/cuidarpet-api/internal/model"
	"github.com/cuidarpet/cuidarpet-api/internal/service/clinic"
)

type Handler struct {
	service *clinic.Service
}

func NewHandler(service *clinic.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	clinics := rg.Group("/clinics")
	{
		clinics.POST("", h.CreateClinic)
		clinics.GET("", h.ListClinics)
		clinics.GET("/:id", h.GetClinic)
		clinics.PUT("/:id", h.UpdateClinic)
		clinics.PUT("/:id/verify", h.VerifyClinic)
		clinics.DELETE("/:id", h.DeleteClinic)
	}
}

func (h *Handler) CreateClinic(c *gin.Context) {
	claims, err := authz.CurrentUser(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	var req model.CreateClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	cl, err := h.service.Create(c.Request.Context(), claims, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Created(c, cl)
}

func (h *Handler) ListClinics(c *gin.Context) {
	claims, err := authz.CurrentUser(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	clinics, err := h.service.List(c.Request.Context(), claims)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.OK(c, clinics)
}

func (h *Handler) GetClinic(c *gin.Context) {
	claims, err := authz.CurrentUser(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid clinic ID")
		return
	}

	cl, err := h.service.Get(c.Request.Context(), claims, id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.OK(c, cl)
}

func (h *Handler) UpdateClinic(c *gin.Context) {
	claims, err := authz.CurrentUser(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid clinic ID")
		return
	}

	var req model.CreateClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	cl, err := h.service.Update(c.Request.Context(), claims, id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.OK(c, cl)
}

type verifyRequest struct {
	Verified bool `json:"verified"`
}

func (h *Handler) VerifyClinic(c *gin.Context) {
	claims, err := authz.CurrentUser(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid clinic ID")
		return
	}

	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	cl, err := h.service.SetVerified(c.Request.Context(), claims, id, req.Verified)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.OK(c, cl)
}

func (h *Handler) DeleteClinic(c *gin.Context) {
	claims, err := authz.CurrentUser(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid clinic ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), claims, id); err != nil {
		handler.Error(c, err)
		return
	}

	handler.NoContent(c)
}
