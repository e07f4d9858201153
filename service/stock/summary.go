package stock

import (
	"time"

	"gorm.io/gorm"

	"storeops.GO/core/cache"
	inventoryRepo "storeops.GO/model/repository/inventory"
)

const (
	summaryCacheKey = "stock:summary"
	summaryCacheTag = "stock"
	summaryCacheTTL = 60 // seconds
)

// Summary returns the aggregate stock counts, read through the cache
// (Redis when configured, in-process otherwise). A stale summary of up to a
// minute is acceptable on the listing dashboard.
func Summary(db *gorm.DB) (*inventoryRepo.StockCounts, error) {
	c := cache.GetInstance()
	if v, ok := c.Get(summaryCacheKey); ok {
		if counts, isCounts := v.(*inventoryRepo.StockCounts); isCounts {
			return counts, nil
		}
	}
	var remote inventoryRepo.StockCounts
	if cache.RemoteGetJSON(summaryCacheKey, &remote) {
		c.Set(summaryCacheKey, &remote, summaryCacheTTL, []string{summaryCacheTag})
		return &remote, nil
	}
	return RefreshSummary(db)
}

// RefreshSummary recomputes the aggregate and warms both cache tiers.
func RefreshSummary(db *gorm.DB) (*inventoryRepo.StockCounts, error) {
	repo, err := inventoryRepo.NewInventoryRepository(db)
	if err != nil {
		return nil, err
	}
	counts, err := repo.AggregateCounts()
	if err != nil {
		return nil, err
	}
	c := cache.GetInstance()
	c.Set(summaryCacheKey, counts, summaryCacheTTL, []string{summaryCacheTag})
	cache.RemoteSetJSON(summaryCacheKey, counts, summaryCacheTTL*time.Second)
	return counts, nil
}

// InvalidateSummary drops the cached aggregate after a ledger mutation.
func InvalidateSummary() {
	cache.GetInstance().DeleteByTag(summaryCacheTag)
	cache.RemoteDelete(summaryCacheKey)
}
