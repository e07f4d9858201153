package purchase

import "time"

// Status is the purchase order status. Received and cancelled are terminal.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusOrdered   Status = "ordered"
	StatusReceived  Status = "received"
	StatusCancelled Status = "cancelled"
)

// PurchaseOrder is the replenishment header. Receiving it increments the
// ledger exactly once; the status flip to received is the idempotency guard.
type PurchaseOrder struct {
	EntityID     uint       `gorm:"column:entity_id;primaryKey;autoIncrement" json:"entity_id"`
	OrderNumber  string     `gorm:"column:order_number;type:varchar(32);uniqueIndex" json:"order_number"`
	SupplierID   uint       `gorm:"column:supplier_id;not null;index" json:"supplier_id"`
	Status       Status     `gorm:"column:status;type:varchar(20);not null;default:'draft'" json:"status"`
	ExpectedDate *time.Time `gorm:"column:expected_date" json:"expected_date,omitempty"`
	TotalAmount  float64    `gorm:"column:total_amount;type:decimal(12,4);not null;default:0" json:"total_amount"`
	Notes        string     `gorm:"column:notes;type:text" json:"notes,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Items []PurchaseOrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (PurchaseOrder) TableName() string {
	return "purchase_order"
}

// Terminal reports whether the status permits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusReceived || s == StatusCancelled
}
