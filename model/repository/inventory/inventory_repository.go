package inventory

import (
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storeops.GO/core/errs"
	inventoryEntity "storeops.GO/model/entity/inventory"
)

type InventoryRepository struct {
	db    *gorm.DB
	sqlDB *sql.DB
}

func NewInventoryRepository(db *gorm.DB) (*InventoryRepository, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	return &InventoryRepository{db: db, sqlDB: sqlDB}, nil
}

// Get returns the ledger row for (variant, location).
func (r *InventoryRepository) Get(variantID, locationID uint) (*inventoryEntity.InventoryRecord, error) {
	var rec inventoryEntity.InventoryRecord
	err := r.db.Where("variant_id = ? AND location_id = ?", variantID, locationID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, errs.Persistence("inventory get", err)
	}
	return &rec, nil
}

// GetQuantity returns available quantity for a variant at a location.
// Raw SQL for minimal overhead on the hot read path.
func (r *InventoryRepository) GetQuantity(variantID, locationID uint) (int64, bool) {
	const query = `SELECT available_qty FROM inventory_record WHERE variant_id = ? AND location_id = ? LIMIT 1`
	var qty sql.NullInt64
	if err := r.sqlDB.QueryRow(query, variantID, locationID).Scan(&qty); err != nil || !qty.Valid {
		return 0, false
	}
	return qty.Int64, true
}

// GetLevelBySKU resolves a SKU and returns its quantity and reorder point at
// a location in one query.
func (r *InventoryRepository) GetLevelBySKU(sku string, locationID uint) (qty, reorderPoint int64, ok bool) {
	const query = `SELECT ir.available_qty, ir.reorder_point FROM inventory_record ir
		JOIN catalog_variant v ON v.entity_id = ir.variant_id
		WHERE v.sku = ? AND ir.location_id = ? LIMIT 1`
	if err := r.sqlDB.QueryRow(query, sku, locationID).Scan(&qty, &reorderPoint); err != nil {
		return 0, 0, false
	}
	return qty, reorderPoint, true
}

// SetQuantity overwrites the quantity for (variant, location), creating the
// ledger row lazily on first stock edit. Rejects negative input.
func (r *InventoryRepository) SetQuantity(variantID, locationID uint, qty int64) error {
	if qty < 0 {
		return errs.Validation("quantity", "must not be negative")
	}
	rec := inventoryEntity.InventoryRecord{
		VariantID:    variantID,
		LocationID:   locationID,
		AvailableQty: qty,
		ReorderPoint: inventoryEntity.DefaultReorderPoint,
		UpdatedAt:    time.Now(),
	}
	upsert := clause.OnConflict{
		Columns:   []clause.Column{{Name: "variant_id"}, {Name: "location_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"available_qty", "updated_at"}),
	}
	if err := r.db.Clauses(upsert).Create(&rec).Error; err != nil {
		return errs.Persistence("inventory set quantity", err)
	}
	return nil
}

// SetBinLocation updates the bin label only; quantity is untouched.
func (r *InventoryRepository) SetBinLocation(variantID, locationID uint, label string) error {
	res := r.db.Model(&inventoryEntity.InventoryRecord{}).
		Where("variant_id = ? AND location_id = ?", variantID, locationID).
		Updates(map[string]interface{}{
			"bin_location": label,
			"updated_at":   time.Now(),
		})
	if res.Error != nil {
		return errs.Persistence("inventory set bin location", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// SetReorderPoint updates the low-stock threshold. Rejects negative input.
func (r *InventoryRepository) SetReorderPoint(variantID, locationID uint, point int64) error {
	if point < 0 {
		return errs.Validation("reorder_point", "must not be negative")
	}
	res := r.db.Model(&inventoryEntity.InventoryRecord{}).
		Where("variant_id = ? AND location_id = ?", variantID, locationID).
		Updates(map[string]interface{}{
			"reorder_point": point,
			"updated_at":    time.Now(),
		})
	if res.Error != nil {
		return errs.Persistence("inventory set reorder point", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// AdjustQuantity applies a relative change as one guarded conditional UPDATE:
// the row only changes when the result stays non-negative, so concurrent
// writers can never drive the ledger below zero (no read-modify-write).
// Package-level so orchestrators can call it inside their own transaction.
func AdjustQuantity(tx *gorm.DB, variantID, locationID uint, delta int64) error {
	res := tx.Model(&inventoryEntity.InventoryRecord{}).
		Where("variant_id = ? AND location_id = ? AND available_qty + ? >= 0", variantID, locationID, delta).
		Updates(map[string]interface{}{
			"available_qty": gorm.Expr("available_qty + ?", delta),
			"updated_at":    time.Now(),
		})
	if res.Error != nil {
		return errs.Persistence("inventory adjust", res.Error)
	}
	if res.RowsAffected == 1 {
		return nil
	}
	// Zero rows: disambiguate by re-reading inside the same transaction.
	var rec inventoryEntity.InventoryRecord
	err := tx.Where("variant_id = ? AND location_id = ?", variantID, locationID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrNotFound
	}
	if err != nil {
		return errs.Persistence("inventory adjust re-read", err)
	}
	if delta < 0 && rec.AvailableQty+delta < 0 {
		return errs.ErrInsufficientStock
	}
	return errs.ErrConflict
}

// AdjustQuantity on the repository runs outside any caller transaction.
func (r *InventoryRepository) AdjustQuantity(variantID, locationID uint, delta int64) error {
	return AdjustQuantity(r.db, variantID, locationID, delta)
}

// EnsureRecord creates the ledger row with zero quantity when it does not
// exist yet (receipt of a never-stocked variant). No-op when present.
func EnsureRecord(tx *gorm.DB, variantID, locationID uint) error {
	rec := inventoryEntity.InventoryRecord{
		VariantID:    variantID,
		LocationID:   locationID,
		ReorderPoint: inventoryEntity.DefaultReorderPoint,
		UpdatedAt:    time.Now(),
	}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "variant_id"}, {Name: "location_id"}},
		DoNothing: true,
	}).Create(&rec).Error
	if err != nil {
		return errs.Persistence("inventory ensure record", err)
	}
	return nil
}

// StockCounts is the aggregate over the whole ledger.
type StockCounts struct {
	Total      int64 `json:"total"`
	OutOfStock int64 `json:"out_of_stock"`
	LowStock   int64 `json:"low_stock"`
}

// AggregateCounts computes total / out-of-stock / low-stock record counts in
// one indexed aggregate query rather than scanning rows client-side.
func (r *InventoryRepository) AggregateCounts() (*StockCounts, error) {
	const query = `SELECT COUNT(*) AS total,
		COALESCE(SUM(CASE WHEN available_qty = 0 THEN 1 ELSE 0 END), 0) AS out_of_stock,
		COALESCE(SUM(CASE WHEN available_qty > 0 AND available_qty <= reorder_point THEN 1 ELSE 0 END), 0) AS low_stock
		FROM inventory_record`
	var c StockCounts
	if err := r.sqlDB.QueryRow(query).Scan(&c.Total, &c.OutOfStock, &c.LowStock); err != nil {
		return nil, errs.Persistence("inventory aggregate counts", err)
	}
	return &c, nil
}

// DefaultLocationID resolves the single active stock location. Errors when no
// active location exists — inventory mutations are illegal before that.
func DefaultLocationID(db *gorm.DB) (uint, error) {
	var loc inventoryEntity.Location
	err := db.Where("is_active = 1").Order("location_id").First(&loc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, errs.ErrNotFound
	}
	if err != nil {
		return 0, errs.Persistence("default location", err)
	}
	return loc.LocationID, nil
}
