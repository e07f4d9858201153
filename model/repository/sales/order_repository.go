package sales

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"storeops.GO/core/errs"
	salesEntity "storeops.GO/model/entity/sales"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// FindByIDWithItems returns the order header and its line items.
func (r *OrderRepository) FindByIDWithItems(id uint) (*salesEntity.Order, error) {
	var o salesEntity.Order
	err := r.db.Preload("Items").First(&o, "entity_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, errs.Persistence("order by id", err)
	}
	return &o, nil
}

// CreateWithItems inserts header and items inside the caller's transaction
// and assigns the human-legible order number from the autoincrement id.
// Header without items is never observable: a failure aborts the whole tx.
func CreateWithItems(tx *gorm.DB, order *salesEntity.Order, items []salesEntity.OrderItem) error {
	if err := tx.Create(order).Error; err != nil {
		return errs.Persistence("order header insert", err)
	}
	order.OrderNumber = fmt.Sprintf("SO-%09d", order.EntityID)
	if err := tx.Model(order).Update("order_number", order.OrderNumber).Error; err != nil {
		return errs.Persistence("order number assign", err)
	}
	for i := range items {
		items[i].OrderID = order.EntityID
	}
	if err := tx.Create(&items).Error; err != nil {
		return errs.Persistence("order items insert", err)
	}
	order.Items = items
	return nil
}

// UpdateStatusIf flips status only when the current status matches expected
// (conditional update, not read-then-write). Returns the rows affected.
func UpdateStatusIf(tx *gorm.DB, id uint, expected, next salesEntity.Status) (int64, error) {
	res := tx.Model(&salesEntity.Order{}).
		Where("entity_id = ? AND status = ?", id, expected).
		Update("status", next)
	if res.Error != nil {
		return 0, errs.Persistence("order status update", res.Error)
	}
	return res.RowsAffected, nil
}

// CurrentStatus reads the order's status.
func CurrentStatus(tx *gorm.DB, id uint) (salesEntity.Status, error) {
	var o salesEntity.Order
	err := tx.Select("status").First(&o, "entity_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", errs.ErrNotFound
	}
	if err != nil {
		return "", errs.Persistence("order status read", err)
	}
	return o.Status, nil
}

// ItemsOf returns the line items of an order.
func ItemsOf(tx *gorm.DB, orderID uint) ([]salesEntity.OrderItem, error) {
	var items []salesEntity.OrderItem
	if err := tx.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
		return nil, errs.Persistence("order items read", err)
	}
	return items, nil
}
