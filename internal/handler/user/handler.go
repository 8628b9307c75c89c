package user

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cuidarpet/cuidarpet-api/internal/authz"
	"github.com/cuidarpet/cuidarpet-api/internal/handler"
	"github.com/cuidarpet/cuidarpet-api/internal/service/user"
)

type Handler struct {
	service *user.Service
}

func NewHandler(service *user.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.GET("/me", h.GetCurrentUser)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id/block", h.BlockUser)
	}
}

func (h *Handler) ListUsers(c *gin.Context) {
	claims, err := authz.CurrentUser(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	users, err := h.service.List(c.Request.Context(), claims)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.OK(c, users)
}

func (h *Handler) GetCurrentUser(c *gin.Context) {
	claims, err := authz.CurrentUser(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	u, err := h.service.Get(c.Request.Context(), claims, claims.UserID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.OK(c, u)
}

func (h *Handler) GetUser(c *gin.Context) {
	claims, err := authz.CurrentUser(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid user ID")
		return
	}

	u, err := h.service.Get(c.Request.Context(), claims, id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.OK(c, u)
}

type blockRequest struct {
	Blocked bool    `json:"blocked"`
	Reason  *string `json:"reason" binding:"omitempty,max=500"`
}

func (h *Handler) BlockUser(c *gin.Context) {
	claims, err := authz.CurrentUser(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid user ID")
		return
	}

	var req blockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	u, err := h.service.SetBlocked(c.Request.Context(), claims, id, req.Blocked, req.Reason)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.OK(c, u)
}
