package stock

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	inventoryEntity "storeops.GO/model/entity/inventory"
	catalogRepo "storeops.GO/model/repository/catalog"
	inventoryRepo "storeops.GO/model/repository/inventory"
)

// StockItemInput is one row of a bulk stock upsert (API or CSV).
type StockItemInput struct {
	SKU          string  `json:"sku"`
	Qty          *int64  `json:"qty"`
	ReorderPoint *int64  `json:"reorder_point"`
	BinLocation  *string `json:"bin_location"`
}

// StockImportResult reports a bulk import run.
type StockImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings,omitempty"`
}

// ImportStock resolves SKUs to variant IDs and upserts ledger rows at the
// default location. Manual-edit semantics: absolute overwrite, negatives
// rejected per row.
func ImportStock(db *gorm.DB, items []StockItemInput, batchSize int) (*StockImportResult, error) {
	if batchSize <= 0 {
		batchSize = 500
	}

	locationID, err := inventoryRepo.DefaultLocationID(db)
	if err != nil {
		return nil, fmt.Errorf("stock import: no active location: %w", err)
	}

	result := &StockImportResult{}

	skus := make([]string, 0, len(items))
	for _, it := range items {
		if it.SKU != "" {
			skus = append(skus, it.SKU)
		}
	}
	skuToID, err := catalogRepo.NewVariantRepository(db).BatchSKUToID(skus)
	if err != nil {
		return nil, err
	}

	// Rows are grouped by which fields the input provided, so the upsert for
	// each group only assigns those columns. A bin-only row must not touch an
	// existing quantity or reorder point.
	groups := make(map[string]*upsertGroup)
	imported := 0
	for _, it := range items {
		if it.SKU == "" {
			result.Skipped++
			result.Warnings = append(result.Warnings, "empty sku, skipping")
			continue
		}
		variantID, ok := skuToID[it.SKU]
		if !ok {
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("sku=%s: variant not found", it.SKU))
			continue
		}
		if it.Qty != nil && *it.Qty < 0 {
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("sku=%s: negative qty %d", it.SKU, *it.Qty))
			continue
		}
		if it.ReorderPoint != nil && *it.ReorderPoint < 0 {
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("sku=%s: negative reorder_point %d", it.SKU, *it.ReorderPoint))
			continue
		}

		rec := inventoryEntity.InventoryRecord{
			VariantID:    variantID,
			LocationID:   locationID,
			ReorderPoint: inventoryEntity.DefaultReorderPoint,
			UpdatedAt:    time.Now(),
		}
		cols := []string{}
		if it.Qty != nil {
			rec.AvailableQty = *it.Qty
			cols = append(cols, "available_qty")
		}
		if it.ReorderPoint != nil {
			rec.ReorderPoint = *it.ReorderPoint
			cols = append(cols, "reorder_point")
		}
		if it.BinLocation != nil {
			rec.BinLocation = *it.BinLocation
			cols = append(cols, "bin_location")
		}

		key := strings.Join(cols, ",")
		g, ok := groups[key]
		if !ok {
			g = &upsertGroup{cols: cols}
			groups[key] = g
		}
		g.rows = append(g.rows, rec)
		imported++
	}

	conflictTarget := []clause.Column{{Name: "variant_id"}, {Name: "location_id"}}
	for _, g := range groups {
		upsert := clause.OnConflict{Columns: conflictTarget, DoNothing: true}
		if len(g.cols) > 0 {
			upsert.DoNothing = false
			upsert.DoUpdates = clause.AssignmentColumns(append(g.cols, "updated_at"))
		}
		if err := db.Clauses(upsert).CreateInBatches(g.rows, batchSize).Error; err != nil {
			return nil, fmt.Errorf("stock upsert: %w", err)
		}
	}

	result.Imported = imported
	InvalidateSummary()
	return result, nil
}

type upsertGroup struct {
	cols []string
	rows []inventoryEntity.InventoryRecord
}

// ImportStockCSV parses a CSV (header: sku,qty,reorder_point,bin_location)
// and feeds it through ImportStock.
func ImportStockCSV(db *gorm.DB, r io.Reader, batchSize int) (*StockImportResult, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("stock csv: read header: %w", err)
	}
	colIndex := make(map[string]int, len(header))
	for i, col := range header {
		colIndex[strings.ToLower(strings.TrimSpace(col))] = i
	}
	if _, ok := colIndex["sku"]; !ok {
		return nil, fmt.Errorf("stock csv: missing sku column")
	}

	var items []StockItemInput
	warnings := []string{}
	for {
		row, rerr := reader.Read()
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return nil, fmt.Errorf("stock csv: %w", rerr)
		}

		item := StockItemInput{}
		if ci := colIndex["sku"]; ci < len(row) {
			item.SKU = strings.TrimSpace(row[ci])
		}
		if ci, ok := colIndex["qty"]; ok && ci < len(row) {
			if v := strings.TrimSpace(row[ci]); v != "" {
				q, perr := strconv.ParseInt(v, 10, 64)
				if perr != nil {
					warnings = append(warnings, fmt.Sprintf("sku=%s: invalid qty %q", item.SKU, v))
					continue
				}
				item.Qty = &q
			}
		}
		if ci, ok := colIndex["reorder_point"]; ok && ci < len(row) {
			if v := strings.TrimSpace(row[ci]); v != "" {
				p, perr := strconv.ParseInt(v, 10, 64)
				if perr != nil {
					warnings = append(warnings, fmt.Sprintf("sku=%s: invalid reorder_point %q", item.SKU, v))
					continue
				}
				item.ReorderPoint = &p
			}
		}
		if ci, ok := colIndex["bin_location"]; ok && ci < len(row) {
			if v := strings.TrimSpace(row[ci]); v != "" {
				item.BinLocation = &v
			}
		}
		items = append(items, item)
	}

	res, err := ImportStock(db, items, batchSize)
	if err != nil {
		return nil, err
	}
	res.Warnings = append(warnings, res.Warnings...)
	return res, nil
}
