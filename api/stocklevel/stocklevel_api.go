// Package stocklevel is the public stock-check endpoint for storefront
// widgets: quantity plus classified status for one SKU, optionally gated by
// an HMAC signature so it can sit outside the authenticated /api group.
package stocklevel

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"storeops.GO/api"
	"storeops.GO/config"
	catalogEntity "storeops.GO/model/entity/catalog"
	catalogRepo "storeops.GO/model/repository/catalog"
	inventoryRepo "storeops.GO/model/repository/inventory"
	stockService "storeops.GO/service/stock"
)

func init() {
	api.RegisterRoute(RegisterStockLevelRoutes)
}

// StockLevelResponse is the public payload.
type StockLevelResponse struct {
	SKU      string  `json:"sku"`
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
	Status   string  `json:"status"`
}

// verifySignature validates HMAC-SHA256 over the SKU using constant-time
// comparison. An empty STOCK_SIGNING_KEY disables the check.
func verifySignature(sku, signature, key string) bool {
	if key == "" {
		return true
	}
	if sku == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(sku))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func RegisterStockLevelRoutes(e *echo.Echo, db *gorm.DB) {
	e.GET("/stock-level", func(c echo.Context) error {
		sku := c.QueryParam("sku")
		if sku == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "sku is required"})
		}
		if !verifySignature(sku, c.QueryParam("signature"), config.GetEnv("STOCK_SIGNING_KEY", "")) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid signature"})
		}

		variantRepo := catalogRepo.NewVariantRepository(db)
		invRepo, err := inventoryRepo.NewInventoryRepository(db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		locationID, err := inventoryRepo.DefaultLocationID(db)
		if err != nil {
			return api.ErrorResponse(c, err)
		}

		// Price and ledger row are independent reads; fetch in parallel.
		// A variant without a ledger row reports zero stock.
		var (
			variant *catalogEntity.Variant
			qty     int64
			reorder int64
		)
		g, _ := errgroup.WithContext(c.Request().Context())
		g.Go(func() error {
			v, verr := variantRepo.FindBySKU(sku)
			if verr != nil {
				return verr
			}
			variant = v
			return nil
		})
		g.Go(func() error {
			if q, rp, ok := invRepo.GetLevelBySKU(sku, locationID); ok {
				qty, reorder = q, rp
			}
			return nil
		})
		if err := g.Wait(); err != nil {
			return api.ErrorResponse(c, err)
		}

		return c.JSON(http.StatusOK, StockLevelResponse{
			SKU:      sku,
			Price:    variant.UnitPrice,
			Quantity: qty,
			Status:   string(stockService.Classify(qty, reorder)),
		})
	})
}
