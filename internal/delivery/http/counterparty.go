package http

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/models"
)

type discountRequest struct {
	Discount *int `json:"discount" binding:"required"`
}

// SetDiscount
// @Summary SetDiscount
// @Description Changes a counterparty's discount percentage; lab_head only
// @ID set-discount
// @Accept json
// @Produce json
// @Param id path string true "organization id"
// @Param discount body discountRequest true "discount percent 0..100"
// @Success 200 {object} models.Organization
// @Failure 400,403,404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/counterparties/{id}/discount [patch]
func (h *Handler) SetDiscount(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		newErrorResponse(c, http.StatusBadRequest, "missing organization id")
		return
	}
	var req discountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid discount payload")
		return
	}

	org, err := h.svc.SetDiscount(getActor(c), id, *req.Discount)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, org)
}

type exportCounterpartiesResponse struct {
	Data []models.Organization `json:"data"`
}

// ExportCounterparties
// @Summary ExportCounterparties
// @Description Read-only listing of active organizations for the partner system, authenticated by shared key
// @ID export-counterparties
// @Produce json
// @Param X-Export-Key header string true "shared export key"
// @Success 200 {object} exportCounterpartiesResponse
// @Failure 401 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/export/counterparties [get]
func (h *Handler) ExportCounterparties(c *gin.Context) {
	if h.exportKey == "" {
		newErrorResponse(c, http.StatusInternalServerError, "export key is not configured")
		return
	}
	key := c.GetHeader("X-Export-Key")
	if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(h.exportKey)) != 1 {
		newErrorResponse(c, http.StatusUnauthorized, "invalid export key")
		return
	}

	orgs, err := h.svc.ExportCounterparties()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, exportCounterpartiesResponse{Data: orgs})
}
