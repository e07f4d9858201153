package purchase

import "time"

// Supplier is referenced by purchase orders; the core only checks existence
// and active state.
type Supplier struct {
	SupplierID uint      `gorm:"column:supplier_id;primaryKey;autoIncrement" json:"supplier_id"`
	Name       string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	IsActive   int16     `gorm:"column:is_active;not null;default:1" json:"is_active"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Supplier) TableName() string {
	return "supplier"
}
