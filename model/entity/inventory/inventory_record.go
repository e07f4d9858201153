package inventory

import "time"

// DefaultReorderPoint applies when a record is created without an explicit
// threshold.
const DefaultReorderPoint int64 = 10

// InventoryRecord is the ledger row: the source of truth for stock quantity
// per (variant, location). AvailableQty is never observably negative; every
// quantity change goes through a guarded conditional UPDATE.
type InventoryRecord struct {
	RecordID     uint      `gorm:"column:record_id;primaryKey;autoIncrement" json:"record_id,omitempty"`
	VariantID    uint      `gorm:"column:variant_id;not null;uniqueIndex:idx_variant_location" json:"variant_id"`
	LocationID   uint      `gorm:"column:location_id;not null;uniqueIndex:idx_variant_location" json:"location_id"`
	AvailableQty int64     `gorm:"column:available_qty;not null;default:0" json:"available_qty"`
	ReorderPoint int64     `gorm:"column:reorder_point;not null;default:10" json:"reorder_point"`
	BinLocation  string    `gorm:"column:bin_location;type:varchar(64)" json:"bin_location"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (InventoryRecord) TableName() string {
	return "inventory_record"
}
