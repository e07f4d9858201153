package catalog

import "time"

// Product groups sellable variants. Catalog data is read-only for the
// inventory core; only the fields the listing joins against live here.
type Product struct {
	EntityID  uint      `gorm:"column:entity_id;primaryKey;autoIncrement" json:"entity_id"`
	Name      string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	IsActive  int16     `gorm:"column:is_active;not null;default:1" json:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string {
	return "catalog_product"
}
