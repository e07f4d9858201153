package sales

import "time"

// OrderItem is a line of an order. Immutable once created;
// TotalPrice = Quantity * UnitPrice.
type OrderItem struct {
	ItemID     uint      `gorm:"column:item_id;primaryKey;autoIncrement" json:"item_id"`
	OrderID    uint      `gorm:"column:order_id;not null;index" json:"order_id"`
	VariantID  uint      `gorm:"column:variant_id;not null;index" json:"variant_id"`
	Quantity   int64     `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice  float64   `gorm:"column:unit_price;type:decimal(12,4);not null" json:"unit_price"`
	TotalPrice float64   `gorm:"column:total_price;type:decimal(12,4);not null" json:"total_price"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (OrderItem) TableName() string {
	return "sales_order_item"
}
