package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/models"
)

type listProductsResponse struct {
	Data []models.Product `json:"data"`
}

// ListProducts
// @Summary ListProducts
// @Description Lists the lens catalog; prices are hidden from doctors
// @ID list-products
// @Produce json
// @Success 200 {object} listProductsResponse
// @Failure 403 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/products [get]
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.svc.ListProducts(getActor(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, listProductsResponse{Data: products})
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid product payload")
		return
	}
	created, err := h.svc.CreateProduct(getActor(c), p)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		newErrorResponse(c, http.StatusBadRequest, "missing product id")
		return
	}
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid product payload")
		return
	}
	p.ID = id
	updated, err := h.svc.UpdateProduct(getActor(c), p)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		newErrorResponse(c, http.StatusBadRequest, "missing product id")
		return
	}
	if err := h.svc.DeleteProduct(getActor(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
