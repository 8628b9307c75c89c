package pet

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cuidarpet/cuidarpet-api/internal/authz"
	"github.com/cuidarpet/cuidarpet-api/internal/handler"
	"github.com/cuidarpet/cuidarpet-api/internal/model"
	"github.com/cuidarpet/cuidarpet-api/internal/service/pet"
)

type Handler struct {
	service *pet.Service
}

func NewHandler(service *pet.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	pets := rg.Group("/pets")
	{
		pets.POST("", h.CreatePet)
		pets.GET("", h.ListPets)
		pets.GET("/:id", h.GetPet)
		pets.PUT("/:id", h.UpdatePet)
		pets.DELETE("/:id", h.DeletePet)
	}
}

func (h *Handler) CreatePet(c *gin.Context) {
	claims, err := authz.CurrentUser(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	var req model.CreatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	p, err := h.service.Create(c.Request.Context(), claims, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Created(c, p)
}

func (h *Handler) ListPets(c *gin.Context) {
	claims, err := authz.CurrentUser(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	pets, err := h.service.List(c.Request.Context(), claims)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.OK(c, pets)
}

func (h *Handler) GetPet(c *gin.Context) {
	claims, err := authz.CurrentUser(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid pet ID")
		return
	}

	p, err := h.service.Get(c.Request.Context(), claims, id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.OK(c, p)
}

func (h *Handler) UpdatePet(c *gin.Context) {
	claims, err := authz.CurrentUser(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid pet ID")
		return
	}

	var req model.CreatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	p, err := h.service.Update(c.Request.Context(), claims, id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.OK(c, p)
}

func (h *Handler) DeletePet(c *gin.Context) {
	claims, err := authz.CurrentUser(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid pet ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), claims, id); err != nil {
		handler.Error(c, err)
		return
	}

	handler.NoContent(c)
}
