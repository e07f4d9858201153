package catalog

import "time"

// Variant is the sellable unit. Identity (entity_id, sku) is immutable;
// price fields are mutable.
type Variant struct {
	EntityID  uint      `gorm:"column:entity_id;primaryKey;autoIncrement" json:"entity_id"`
	ProductID uint      `gorm:"column:product_id;not null;index" json:"product_id"`
	SKU       string    `gorm:"column:sku;type:varchar(64);not null;uniqueIndex" json:"sku"`
	Name      string    `gorm:"column:name;type:varchar(255)" json:"name"`
	UnitPrice float64   `gorm:"column:unit_price;type:decimal(12,4);not null;default:0" json:"unit_price"`
	CostPrice float64   `gorm:"column:cost_price;type:decimal(12,4);not null;default:0" json:"cost_price"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Variant) TableName() string {
	return "catalog_variant"
}
