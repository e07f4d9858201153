package purchase

import "time"

// PurchaseOrderItem is a line of a purchase order. ReceivedQty stays 0 until
// receipt, then is set equal to Quantity — partial receiving is represented
// in the model but not exercised by any operation.
type PurchaseOrderItem struct {
	ItemID      uint      `gorm:"column:item_id;primaryKey;autoIncrement" json:"item_id"`
	OrderID     uint      `gorm:"column:order_id;not null;index" json:"order_id"`
	VariantID   uint      `gorm:"column:variant_id;not null;index" json:"variant_id"`
	Quantity    int64     `gorm:"column:quantity;not null" json:"quantity"`
	UnitCost    float64   `gorm:"column:unit_cost;type:decimal(12,4);not null" json:"unit_cost"`
	TotalCost   float64   `gorm:"column:total_cost;type:decimal(12,4);not null" json:"total_cost"`
	ReceivedQty int64     `gorm:"column:received_qty;not null;default:0" json:"received_qty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (PurchaseOrderItem) TableName() string {
	return "purchase_order_item"
}
