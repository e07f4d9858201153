package inventory

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"storeops.GO/api"
	"storeops.GO/config"
	"storeops.GO/core/auth"
	inventoryRepo "storeops.GO/model/repository/inventory"
	stockService "storeops.GO/service/stock"
)

func init() {
	api.RegisterModule(RegisterInventoryRoutes)
}

func RegisterInventoryRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/inventory")

	// Read paths: listing and summary
	g.GET("", func(c echo.Context) error {
		page, _ := strconv.Atoi(c.QueryParam("page"))
		pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))
		res, err := stockService.List(c.Request().Context(), db, c.QueryParam("search"), page, pageSize)
		if err != nil {
			return api.ErrorResponse(c, err)
		}
		return c.JSON(http.StatusOK, res)
	})

	g.GET("/summary", func(c echo.Context) error {
		counts, err := stockService.Summary(db)
		if err != nil {
			return api.ErrorResponse(c, err)
		}
		return c.JSON(http.StatusOK, counts)
	})

	// Mutations are gated on the stock/manage resource.
	m := g.Group("", auth.RequirePermission(config.ResourceStockManage))

	// PUT /api/inventory/:variant/:location/quantity — manual absolute edit
	m.PUT("/:variant/:location/quantity", func(c echo.Context) error {
		variantID, locationID, err := pathIDs(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		var body struct {
			Quantity int64 `json:"quantity"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		repo, err := inventoryRepo.NewInventoryRepository(db)
		if err != nil {
			return api.ErrorResponse(c, err)
		}
		if err := repo.SetQuantity(variantID, locationID, body.Quantity); err != nil {
			return api.ErrorResponse(c, err)
		}
		stockService.InvalidateSummary()
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	// PUT /api/inventory/:variant/:location/bin-location — metadata only
	m.PUT("/:variant/:location/bin-location", func(c echo.Context) error {
		variantID, locationID, err := pathIDs(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		var body struct {
			BinLocation string `json:"bin_location"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		repo, err := inventoryRepo.NewInventoryRepository(db)
		if err != nil {
			return api.ErrorResponse(c, err)
		}
		if err := repo.SetBinLocation(variantID, locationID, body.BinLocation); err != nil {
			return api.ErrorResponse(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	// PUT /api/inventory/:variant/:location/reorder-point
	m.PUT("/:variant/:location/reorder-point", func(c echo.Context) error {
		variantID, locationID, err := pathIDs(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		var body struct {
			ReorderPoint int64 `json:"reorder_point"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		repo, err := inventoryRepo.NewInventoryRepository(db)
		if err != nil {
			return api.ErrorResponse(c, err)
		}
		if err := repo.SetReorderPoint(variantID, locationID, body.ReorderPoint); err != nil {
			return api.ErrorResponse(c, err)
		}
		stockService.InvalidateSummary()
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	// POST /api/inventory/import — bulk stock upsert
	m.POST("/import", func(c echo.Context) error {
		start := time.Now()

		var body struct {
			Items     []stockService.StockItemInput `json:"items"`
			BatchSize int                           `json:"batch_size"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if len(body.Items) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "items array is required and must not be empty"})
		}

		res, err := stockService.ImportStock(db, body.Items, body.BatchSize)
		duration := time.Since(start).Milliseconds()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error(), "request_duration_ms": duration})
		}

		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusOK, echo.Map{
			"imported":            res.Imported,
			"skipped":             res.Skipped,
			"warnings":            res.Warnings,
			"request_duration_ms": duration,
		})
	})
}

func pathIDs(c echo.Context) (uint, uint, error) {
	variantID, err := strconv.ParseUint(c.Param("variant"), 10, 64)
	if err != nil {
		return 0, 0, err
	}
	locationID, err := strconv.ParseUint(c.Param("location"), 10, 64)
	if err != nil {
		return 0, 0, err
	}
	return uint(variantID), uint(locationID), nil
}
