package stock

import (
	"context"
	"log"

	"gorm.io/gorm"

	inventoryRepo "storeops.GO/model/repository/inventory"
)

// ListingResult is a page of inventory rows with derived stock status.
type ListingResult struct {
	Items      []inventoryRepo.ListingRow `json:"items"`
	TotalCount int64                      `json:"total_count"`
	Page       int                        `json:"page"`
	PageSize   int                        `json:"page_size"`
}

// List returns the inventory listing with product info and classified status.
// The search query goes through Elasticsearch when configured, SQL LIKE
// otherwise; ES failures degrade to SQL rather than failing the listing.
func List(ctx context.Context, db *gorm.DB, search string, page, pageSize int) (*ListingResult, error) {
	repo, err := inventoryRepo.NewInventoryRepository(db)
	if err != nil {
		return nil, err
	}

	var variantIDs []uint
	if search != "" {
		if svc := GetSearchService(); svc.Enabled() {
			ids, serr := svc.SearchVariantIDs(ctx, search, 500)
			if serr != nil {
				log.Printf("inventory search: elasticsearch failed, using SQL fallback: %v", serr)
			} else {
				variantIDs = ids
				if variantIDs == nil {
					variantIDs = []uint{}
				}
			}
		}
	}

	rows, total, err := repo.ListWithProductInfo(search, variantIDs, page, pageSize)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Status = string(Classify(rows[i].AvailableQty, rows[i].ReorderPoint))
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if page <= 0 {
		page = 1
	}
	return &ListingResult{Items: rows, TotalCount: total, Page: page, PageSize: pageSize}, nil
}

// LowStock returns all rows at or below their reorder point with status set.
func LowStock(db *gorm.DB) ([]inventoryRepo.ListingRow, error) {
	repo, err := inventoryRepo.NewInventoryRepository(db)
	if err != nil {
		return nil, err
	}
	rows, err := repo.ListLowStock()
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Status = string(Classify(rows[i].AvailableQty, rows[i].ReorderPoint))
	}
	return rows, nil
}
