package employee

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cuidarpet/cuidarpet-api/internal/authz"
	"github.com/cuidarpet/cuidarpet-api/internal/handler"
	"github.com/cuidarpet/cuidarpet-api/internal/model"
	"github.com/cuidarpet/cuidarpet-api/internal/service/employee"
)

type Handler struct {
	service *employee.Service
}

func NewHandler(service *employee.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	employees := rg.Group("/employees")
	{
		employees.POST("/clinic/:clinicId", h.CreateEmployee)
		employees.GET("/clinic/:clinicId", h.ListClinicEmployees)
		employees.PUT("/:id", h.UpdateEmployee)
		employees.DELETE("/:id", h.DeleteEmployee)
	}
}

func (h *Handler) CreateEmployee(c *gin.Context) {
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

	var req model.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	e, err := h.service.Create(c.Request.Context(), claims, clinicID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Created(c, e)
}

func (h *Handler) ListClinicEmployees(c *gin.Context) {
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

	employees, err := h.service.ListByClinic(c.Request.Context(), claims, clinicID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.OK(c, employees)
}

func (h *Handler) UpdateEmployee(c *gin.Context) {
	claims, err := authz.CurrentUser(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid employee ID")
		return
	}

	var req model.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	e, err := h.service.Update(c.Request.Context(), claims, id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.OK(c, e)
}

func (h *Handler) DeleteEmployee(c *gin.Context) {
	claims, err := authz.CurrentUser(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid employee ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), claims, id); err != nil {
		handler.Error(c, err)
		return
	}

	handler.NoContent(c)
}
