package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/models"
)

type addDefectRequest struct {
	Qty  int    `json:"qty" binding:"required"`
	Note string `json:"note"`
}

type addDefectResponse struct {
	Defect models.Defect `json:"defect"`
	Order  models.Order  `json:"order"`
}

// AddDefect
// @Summary AddDefect
// @Description Records a defect on an order that is in production, ready or rework
// @ID add-defect
// @Accept json
// @Produce json
// @Param number path string true "order number"
// @Param defect body addDefectRequest true "defect quantity and note"
// @Success 201 {object} addDefectResponse
// @Failure 400,404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/orders/{number}/defects [post]
func (h *Handler) AddDefect(c *gin.Context) {
	number := strings.TrimSpace(c.Param("number"))
	if number == "" {
		newErrorResponse(c, http.StatusBadRequest, "missing order number")
		return
	}
	var req addDefectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid defect payload")
		return
	}

	defect, ord, err := h.svc.AddDefect(number, req.Qty, req.Note)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, addDefectResponse{Defect: defect, Order: ord})
}

type archiveDefectRequest struct {
	Archived *bool `json:"archived"`
}

type archiveDefectResponse struct {
	Defect models.Defect `json:"defect"`
}

// ArchiveDefect
// @Summary ArchiveDefect
// @Description Sets or toggles the archived flag of a defect within an order
// @ID archive-defect
// @Accept json
// @Produce json
// @Param number path string true "order number"
// @Param id path string true "defect id"
// @Param archive body archiveDefectRequest false "explicit archived value; omitted toggles"
// @Success 200 {object} archiveDefectResponse
// @Failure 400,404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/orders/{number}/defects/{id}/archive [patch]
func (h *Handler) ArchiveDefect(c *gin.Context) {
	number := strings.TrimSpace(c.Param("number"))
	defectID := strings.TrimSpace(c.Param("id"))
	if number == "" || defectID == "" {
		newErrorResponse(c, http.StatusBadRequest, "missing order number or defect id")
		return
	}
	var req archiveDefectRequest
	// an absent body means toggle; a body that does not decode is an error
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		newErrorResponse(c, http.StatusBadRequest, "invalid archive payload")
		return
	}

	defect, err := h.svc.SetDefectArchived(number, defectID, req.Archived)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, archiveDefectResponse{Defect: defect})
}
