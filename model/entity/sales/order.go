package sales

import "time"

// Status is the order fulfillment status.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// PaymentStatus is an orthogonal attribute of the order, not a state-machine
// state.
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Order is the fulfillment header. CustomerID is nullable: anonymous/POS
// sales are legal. OrderNumber is the human-legible monotonic identifier,
// distinct from EntityID.
type Order struct {
	EntityID       uint          `gorm:"column:entity_id;primaryKey;autoIncrement" json:"entity_id"`
	OrderNumber    string        `gorm:"column:order_number;type:varchar(32);uniqueIndex" json:"order_number"`
	Status         Status        `gorm:"column:status;type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentStatus  PaymentStatus `gorm:"column:payment_status;type:varchar(20);not null;default:'unpaid'" json:"payment_status"`
	PaymentMethod  string        `gorm:"column:payment_method;type:varchar(32)" json:"payment_method"`
	TotalAmount    float64       `gorm:"column:total_amount;type:decimal(12,4);not null;default:0" json:"total_amount"`
	DiscountAmount float64       `gorm:"column:discount_amount;type:decimal(12,4);not null;default:0" json:"discount_amount"`
	TaxAmount      float64       `gorm:"column:tax_amount;type:decimal(12,4);not null;default:0" json:"tax_amount"`
	CustomerID     *uint         `gorm:"column:customer_id" json:"customer_id,omitempty"`
	Notes          string        `gorm:"column:notes;type:text" json:"notes,omitempty"`
	OrderedAt      time.Time     `gorm:"column:ordered_at" json:"ordered_at"`
	CreatedAt      time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

func (Order) TableName() string {
	return "sales_order"
}

// Terminal reports whether the status permits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}
