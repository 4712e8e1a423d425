package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/models"
	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/service"

	_ "github.com/daniyarovaalmaty/lensflow-crm-sub001/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handler struct {
	svc       service.CRM
	exportKey string
}

func NewHandler(s service.CRM, exportKey string) *Handler {
	return &Handler{svc: s, exportKey: exportKey}
}

const actorKey = "actor"

// identity resolves the authenticated actor from trusted gateway headers.
// Token issuance and verification happen upstream.
func identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-User-Id")
		if id == "" {
			newErrorResponse(c, http.StatusUnauthorized, "missing identity")
			c.Abort()
			return
		}
		c.Set(actorKey, models.Actor{
			ID:      id,
			Role:    models.Role(c.GetHeader("X-User-Role")),
			SubRole: models.SubRole(c.GetHeader("X-User-Sub-Role")),
			OrgID:   c.GetHeader("X-Org-Id"),
		})
		c.Next()
	}
}

func getActor(c *gin.Context) models.Actor {
	v, ok := c.Get(actorKey)
	if !ok {
		return models.Actor{}
	}
	return v.(models.Actor)
}

func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.Default()

	api := router.Group("/api", identity())
	{
		api.POST("/orders", h.CreateOrder)
		api.GET("/orders", h.GetAllOrders)
		api.GET("/orders/:number", h.GetOrderByNumber)
		api.PUT("/orders/:number", h.EditOrder)
		api.PATCH("/orders/:number/status", h.TransitionOrder)
		api.PATCH("/orders/:number/payment", h.SetPaymentStatus)

		api.POST("/orders/:number/defects", h.AddDefect)
		api.PATCH("/orders/:number/defects/:id/archive", h.ArchiveDefect)

		api.GET("/products", h.ListProducts)
		api.POST("/products", h.CreateProduct)
		api.PUT("/products/:id", h.UpdateProduct)
		api.DELETE("/products/:id", h.DeleteProduct)

		api.POST("/staff", h.CreateStaff)
		api.PUT("/staff/:id", h.UpdateStaff)
		api.DELETE("/staff/:id", h.DeleteStaff)

		api.PATCH("/counterparties/:id/discount", h.SetDiscount)
	}

	// the partner authenticates with a shared key, not a user identity
	router.GET("/api/export/counterparties", h.ExportCounterparties)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
