package inventory

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"
	"gorm.io/gorm"

	"storeops.GO/core/errs"
)

// ListingRow is one line of the inventory listing: ledger fields joined with
// variant/product metadata. Status is filled by the caller from the single
// stock classifier.
type ListingRow struct {
	VariantID    uint    `mapstructure:"variant_id" json:"variant_id"`
	LocationID   uint    `mapstructure:"location_id" json:"location_id"`
	SKU          string  `mapstructure:"sku" json:"sku"`
	VariantName  string  `mapstructure:"variant_name" json:"variant_name"`
	ProductName  string  `mapstructure:"product_name" json:"product_name"`
	UnitPrice    float64 `mapstructure:"unit_price" json:"unit_price"`
	AvailableQty int64   `mapstructure:"available_qty" json:"available_qty"`
	ReorderPoint int64   `mapstructure:"reorder_point" json:"reorder_point"`
	BinLocation  string  `mapstructure:"bin_location" json:"bin_location"`
	Status       string  `mapstructure:"-" json:"status"`
}

// numericHook coerces the driver's scan types (int64, []byte, strings) into
// the row's typed fields.
func numericHook() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if b, ok := data.([]byte); ok {
			data = string(b)
		}
		s, isStr := data.(string)
		if !isStr {
			return data, nil
		}
		switch t.Kind() {
		case reflect.Int64, reflect.Uint:
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return data, nil
			}
			return n, nil
		case reflect.Float64:
			fv, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return data, nil
			}
			return fv, nil
		}
		return data, nil
	}
}

func decodeListingRow(raw map[string]interface{}) (*ListingRow, error) {
	var row ListingRow
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &row,
		WeaklyTypedInput: true,
		DecodeHook:       numericHook(),
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, err
	}
	return &row, nil
}

// ListWithProductInfo returns a page of ledger rows joined with variant and
// product metadata. searchQuery filters on SKU and names (LIKE); variantIDs,
// when non-nil, restricts to the given variants (the Elasticsearch path
// resolves IDs first and hands them in here). Read-only; a point-in-time
// snapshot is acceptable.
func (r *InventoryRepository) ListWithProductInfo(searchQuery string, variantIDs []uint, page, pageSize int) ([]ListingRow, int64, error) {
	if pageSize <= 0 {
		pageSize = 20
	}
	if page <= 0 {
		page = 1
	}

	// Fresh builder per query; gorm chains are not safely reusable across
	// Count and Find.
	build := func() *gorm.DB {
		q := r.db.Table("inventory_record ir").
			Joins("JOIN catalog_variant v ON v.entity_id = ir.variant_id").
			Joins("JOIN catalog_product p ON p.entity_id = v.product_id")
		if variantIDs != nil {
			q = q.Where("ir.variant_id IN ?", variantIDs)
		} else if searchQuery != "" {
			like := "%" + searchQuery + "%"
			q = q.Where("v.sku LIKE ? OR v.name LIKE ? OR p.name LIKE ?", like, like, like)
		}
		return q
	}

	var total int64
	if err := build().Count(&total).Error; err != nil {
		return nil, 0, errs.Persistence("inventory listing count", err)
	}

	var raw []map[string]interface{}
	err := build().
		Select("ir.variant_id, ir.location_id, v.sku, v.name AS variant_name, p.name AS product_name, " +
			"v.unit_price, ir.available_qty, ir.reorder_point, ir.bin_location").
		Order("v.sku").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&raw).Error
	if err != nil {
		return nil, 0, errs.Persistence("inventory listing", err)
	}

	rows := make([]ListingRow, 0, len(raw))
	for _, m := range raw {
		row, derr := decodeListingRow(m)
		if derr != nil {
			return nil, 0, fmt.Errorf("inventory listing decode: %w", derr)
		}
		rows = append(rows, *row)
	}
	return rows, total, nil
}

// ListLowStock returns every ledger row at or below its reorder point,
// joined with SKU for reporting.
func (r *InventoryRepository) ListLowStock() ([]ListingRow, error) {
	rows, _, err := r.lowStockPage()
	return rows, err
}

func (r *InventoryRepository) lowStockPage() ([]ListingRow, int64, error) {
	var raw []map[string]interface{}
	err := r.db.Table("inventory_record ir").
		Joins("JOIN catalog_variant v ON v.entity_id = ir.variant_id").
		Joins("JOIN catalog_product p ON p.entity_id = v.product_id").
		Where("ir.available_qty <= ir.reorder_point").
		Select("ir.variant_id, ir.location_id, v.sku, v.name AS variant_name, p.name AS product_name, " +
			"v.unit_price, ir.available_qty, ir.reorder_point, ir.bin_location").
		Order("ir.available_qty").
		Find(&raw).Error
	if err != nil {
		return nil, 0, errs.Persistence("low stock listing", err)
	}
	rows := make([]ListingRow, 0, len(raw))
	for _, m := range raw {
		row, derr := decodeListingRow(m)
		if derr != nil {
			return nil, 0, fmt.Errorf("low stock decode: %w", derr)
		}
		rows = append(rows, *row)
	}
	return rows, int64(len(rows)), nil
}
