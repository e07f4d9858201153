package purchase

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"storeops.GO/api"
	"storeops.GO/config"
	"storeops.GO/core/auth"
	purchaseService "storeops.GO/service/purchase"
)

func init() {
	api.RegisterModule(RegisterPurchaseRoutes)
}

func RegisterPurchaseRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/purchase-orders")
	svc := purchaseService.NewPurchaseService(db)

	g.GET("/:id", func(c echo.Context) error {
		id, ok := pathID(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid purchase order id"})
		}
		po, err := svc.GetPurchaseOrder(id)
		if err != nil {
			return api.ErrorResponse(c, err)
		}
		return c.JSON(http.StatusOK, po)
	})

	m := g.Group("", auth.RequirePermission(config.ResourcePurchasingManage))

	m.POST("", func(c echo.Context) error {
		var body purchaseService.CreateInput
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		po, err := svc.CreatePurchaseOrder(body)
		if err != nil {
			return api.ErrorResponse(c, err)
		}
		return c.JSON(http.StatusCreated, po)
	})

	m.POST("/:id/ordered", func(c echo.Context) error {
		id, ok := pathID(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid purchase order id"})
		}
		if err := svc.MarkOrdered(id); err != nil {
			return api.ErrorResponse(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ordered"})
	})

	// Idempotent by construction: a second receive returns already_received
	// and leaves the ledger untouched.
	m.POST("/:id/receive", func(c echo.Context) error {
		id, ok := pathID(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid purchase order id"})
		}
		if err := svc.ReceivePurchaseOrder(id); err != nil {
			return api.ErrorResponse(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "received"})
	})

	m.POST("/:id/cancel", func(c echo.Context) error {
		id, ok := pathID(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid purchase order id"})
		}
		if err := svc.CancelPurchaseOrder(id); err != nil {
			return api.ErrorResponse(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "cancelled"})
	})

	m.DELETE("/:id", func(c echo.Context) error {
		id, ok := pathID(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid purchase order id"})
		}
		if err := svc.DeletePurchaseOrder(id); err != nil {
			return api.ErrorResponse(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	})
}

func pathID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
