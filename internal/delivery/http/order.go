package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/models"
	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/service"
)

type getAllOrdersResponse struct {
	Data []models.Order `json:"data"`
}

// CreateOrder
// @Summary CreateOrder
// @Description Creates a new production order in pending status on behalf of the authenticated actor
// @ID create-order
// @Accept json
// @Produce json
// @Param order body models.Order true "order payload"
// @Success 201 {object} models.Order
// @Failure 400,409 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/orders [post]
func (h *Handler) CreateOrder(c *gin.Context) {
	var ord models.Order
	if err := c.ShouldBindJSON(&ord); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid order payload")
		return
	}

	created, err := h.svc.CreateOrder(getActor(c), ord)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetOrderByNumber
// @Summary GetOrderByNumber
// @Description Returns a single order addressed by its human-facing number
// @ID get-order-by-number
// @Accept json
// @Produce json
// @Param number path string true "order number"
// @Success 200 {object} models.Order
// @Failure 400,404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/orders/{number} [get]
func (h *Handler) GetOrderByNumber(c *gin.Context) {
	number := strings.TrimSpace(c.Param("number"))
	if number == "" {
		newErrorResponse(c, http.StatusBadRequest, "missing order number")
		return
	}

	ord, err := h.svc.GetOrder(number)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ord)
}

// GetAllOrders
// @Summary GetAllOrders
// @Description Lists every order in the store
// @ID get-all-orders
// @Accept json
// @Produce json
// @Success 200 {object} getAllOrdersResponse
// @Failure 500 {object} errorResponse
// @Router /api/orders [get]
func (h *Handler) GetAllOrders(c *gin.Context) {
	orders, err := h.svc.GetAllOrders()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, getAllOrdersResponse{Data: orders})
}

// EditOrder
// @Summary EditOrder
// @Description Lets the order's creator change non-status fields while the edit window is open
// @ID edit-order
// @Accept json
// @Produce json
// @Param number path string true "order number"
// @Param patch body service.OrderPatch true "fields to change"
// @Success 200 {object} models.Order
// @Failure 400,403,404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/orders/{number} [put]
func (h *Handler) EditOrder(c *gin.Context) {
	number := strings.TrimSpace(c.Param("number"))
	if number == "" {
		newErrorResponse(c, http.StatusBadRequest, "missing order number")
		return
	}
	var patch service.OrderPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid patch payload")
		return
	}

	ord, err := h.svc.EditOrder(getActor(c), number, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ord)
}

type transitionRequest struct {
	Status string  `json:"status" binding:"required"`
	Notes  *string `json:"notes"`
}

// TransitionOrder
// @Summary TransitionOrder
// @Description Moves the order into the requested status; milestone timestamps stamp once, partner mirror runs best-effort
// @ID transition-order
// @Accept json
// @Produce json
// @Param number path string true "order number"
// @Param transition body transitionRequest true "new status and optional notes"
// @Success 200 {object} models.Order
// @Failure 400,404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/orders/{number}/status [patch]
func (h *Handler) TransitionOrder(c *gin.Context) {
	number := strings.TrimSpace(c.Param("number"))
	if number == "" {
		newErrorResponse(c, http.StatusBadRequest, "missing order number")
		return
	}
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid transition payload")
		return
	}

	ord, err := h.svc.Transition(number, models.OrderStatus(req.Status), req.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ord)
}

type paymentRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetPaymentStatus
// @Summary SetPaymentStatus
// @Description Changes the order's payment status; restricted to the laboratory accountant
// @ID set-payment-status
// @Accept json
// @Produce json
// @Param number path string true "order number"
// @Param payment body paymentRequest true "payment status"
// @Success 200 {object} models.Order
// @Failure 400,403,404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/orders/{number}/payment [patch]
func (h *Handler) SetPaymentStatus(c *gin.Context) {
	number := strings.TrimSpace(c.Param("number"))
	if number == "" {
		newErrorResponse(c, http.StatusBadRequest, "missing order number")
		return
	}
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid payment payload")
		return
	}

	ord, err := h.svc.SetPaymentStatus(getActor(c), number, models.PaymentStatus(req.Status))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ord)
}
