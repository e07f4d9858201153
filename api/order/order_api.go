package order

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"storeops.GO/api"
	"storeops.GO/config"
	"storeops.GO/core/auth"
	salesEntity "storeops.GO/model/entity/sales"
	orderService "storeops.GO/service/order"
)

func init() {
	api.RegisterModule(RegisterOrderRoutes)
}

func RegisterOrderRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/orders")
	svc := orderService.NewOrderService(db)

	g.GET("/:id", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
		}
		o, err := svc.GetOrder(uint(id))
		if err != nil {
			return api.ErrorResponse(c, err)
		}
		return c.JSON(http.StatusOK, o)
	})

	m := g.Group("", auth.RequirePermission(config.ResourceOrdersManage))

	// POST /api/orders — create order, deduct stock atomically
	m.POST("", func(c echo.Context) error {
		var body orderService.CreateInput
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		o, err := svc.CreateOrder(body)
		if err != nil {
			return api.ErrorResponse(c, err)
		}
		return c.JSON(http.StatusCreated, o)
	})

	// PUT /api/orders/:id/status — state machine transition
	m.PUT("/:id/status", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
		}
		var body struct {
			Status string `json:"status"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if err := svc.UpdateOrderStatus(uint(id), salesEntity.Status(body.Status)); err != nil {
			return api.ErrorResponse(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"status": body.Status})
	})
}
