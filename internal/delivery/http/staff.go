package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/models"
)

func (h *Handler) CreateStaff(c *gin.Context) {
	var u models.User
	if err := c.ShouldBindJSON(&u); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid staff payload")
		return
	}
	created, err := h.svc.CreateStaff(getActor(c), u)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateStaff(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		newErrorResponse(c, http.StatusBadRequest, "missing user id")
		return
	}
	var u models.User
	if err := c.ShouldBindJSON(&u); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid staff payload")
		return
	}
	u.ID = id
	updated, err := h.svc.UpdateStaff(getActor(c), u)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteStaff(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		newErrorResponse(c, http.StatusBadRequest, "missing user id")
		return
	}
	if err := h.svc.DeleteStaff(getActor(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
