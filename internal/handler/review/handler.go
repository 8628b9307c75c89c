package review

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cuidarpet/cuidarpet-api/internal/authz"
	"github.com/cuidarpet/cuidarpet-api/internal/handler"
	"github.com/cuidarpet/cuidarpet-api/internal/model"
	"github.com/cuidarpet/cuidarpet-api/internal/service/review"
)

type Handler struct {
	service *review.Service
}

func NewHandler(service *review.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	reviews := rg.Group("/reviews")
	{
		reviews.POST("", h.CreateReview)
		reviews.GET("/clinic/:clinicId", h.ListClinicReviews)
		reviews.PUT("/:id/moderate", h.ModerateReview)
	}
}

func (h *Handler) CreateReview(c *gin.Context) {
	claims, err := authz.CurrentUser(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	r, err := h.service.Create(c.Request.Context(), claims, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Created(c, r)
}

func (h *Handler) ListClinicReviews(c *gin.Context) {
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

	reviews, err := h.service.ListByClinic(c.Request.Context(), claims, clinicID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.OK(c, reviews)
}

func (h *Handler) ModerateReview(c *gin.Context) {
	claims, err := authz.CurrentUser(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid review ID")
		return
	}

	var req model.ModerateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	r, err := h.service.Moderate(c.Request.Context(), claims, id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.OK(c, r)
}
