package purchase

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"storeops.GO/core/errs"
	purchaseEntity "storeops.GO/model/entity/purchase"
)

type PurchaseOrderRepository struct {
	db *gorm.DB
}

func NewPurchaseOrderRepository(db *gorm.DB) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{db: db}
}

// FindByIDWithItems returns the purchase order and its line items.
func (r *PurchaseOrderRepository) FindByIDWithItems(id uint) (*purchaseEntity.PurchaseOrder, error) {
	var po purchaseEntity.PurchaseOrder
	err := r.db.Preload("Items").First(&po, "entity_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, errs.Persistence("purchase order by id", err)
	}
	return &po, nil
}

// SupplierExists checks the supplier reference is present and active.
func (r *PurchaseOrderRepository) SupplierExists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&purchaseEntity.Supplier{}).
		Where("supplier_id = ? AND is_active = 1", id).
		Count(&count).Error
	if err != nil {
		return false, errs.Persistence("supplier lookup", err)
	}
	return count > 0, nil
}

// CreateWithItems inserts header and items inside the caller's transaction,
// assigning the PO number from the autoincrement id.
func CreateWithItems(tx *gorm.DB, po *purchaseEntity.PurchaseOrder, items []purchaseEntity.PurchaseOrderItem) error {
	if err := tx.Create(po).Error; err != nil {
		return errs.Persistence("purchase order header insert", err)
	}
	po.OrderNumber = fmt.Sprintf("PO-%09d", po.EntityID)
	if err := tx.Model(po).Update("order_number", po.OrderNumber).Error; err != nil {
		return errs.Persistence("purchase order number assign", err)
	}
	for i := range items {
		items[i].OrderID = po.EntityID
	}
	if err := tx.Create(&items).Error; err != nil {
		return errs.Persistence("purchase order items insert", err)
	}
	po.Items = items
	return nil
}

// UpdateStatusIf flips status only from the expected current status.
func UpdateStatusIf(tx *gorm.DB, id uint, expected, next purchaseEntity.Status) (int64, error) {
	res := tx.Model(&purchaseEntity.PurchaseOrder{}).
		Where("entity_id = ? AND status = ?", id, expected).
		Update("status", next)
	if res.Error != nil {
		return 0, errs.Persistence("purchase order status update", res.Error)
	}
	return res.RowsAffected, nil
}

// CurrentStatus reads the purchase order's status.
func CurrentStatus(tx *gorm.DB, id uint) (purchaseEntity.Status, error) {
	var po purchaseEntity.PurchaseOrder
	err := tx.Select("status").First(&po, "entity_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", errs.ErrNotFound
	}
	if err != nil {
		return "", errs.Persistence("purchase order status read", err)
	}
	return po.Status, nil
}

// ItemsOf returns the line items of a purchase order.
func ItemsOf(tx *gorm.DB, poID uint) ([]purchaseEntity.PurchaseOrderItem, error) {
	var items []purchaseEntity.PurchaseOrderItem
	if err := tx.Where("order_id = ?", poID).Find(&items).Error; err != nil {
		return nil, errs.Persistence("purchase order items read", err)
	}
	return items, nil
}

// DeleteIfNotReceived deletes the order and cascades to its items, but only
// while status is not received — a precondition, not best-effort. The item
// delete runs in the same transaction so the cascade holds on stores without
// FK cascade support.
func DeleteIfNotReceived(tx *gorm.DB, id uint) error {
	res := tx.Where("entity_id = ? AND status <> ?", id, purchaseEntity.StatusReceived).
		Delete(&purchaseEntity.PurchaseOrder{})
	if res.Error != nil {
		return errs.Persistence("purchase order delete", res.Error)
	}
	if res.RowsAffected == 0 {
		// Distinguish a received order from a missing one.
		status, err := CurrentStatus(tx, id)
		if err != nil {
			return err
		}
		if status == purchaseEntity.StatusReceived {
			return errs.ErrInvalidTransition
		}
		return errs.ErrConflict
	}
	if err := tx.Where("order_id = ?", id).Delete(&purchaseEntity.PurchaseOrderItem{}).Error; err != nil {
		return errs.Persistence("purchase order items delete", err)
	}
	return nil
}
