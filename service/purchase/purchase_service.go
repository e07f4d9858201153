// Package purchase is the replenishment orchestrator: it creates purchase
// orders, receives them into the stock ledger exactly once, and drives the
// purchase order state machine.
package purchase

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"storeops.GO/core/errs"
	purchaseEntity "storeops.GO/model/entity/purchase"
	catalogRepo "storeops.GO/model/repository/catalog"
	inventoryRepo "storeops.GO/model/repository/inventory"
	purchaseRepo "storeops.GO/model/repository/purchase"
	stockService "storeops.GO/service/stock"
)

// ItemInput is one requested purchase order line.
type ItemInput struct {
	VariantID uint    `json:"variant_id"`
	Quantity  int64   `json:"quantity"`
	UnitCost  float64 `json:"unit_cost"`
}

// CreateInput is the purchase order creation request.
type CreateInput struct {
	SupplierID   uint        `json:"supplier_id"`
	ExpectedDate *time.Time  `json:"expected_date"`
	Notes        string      `json:"notes"`
	Items        []ItemInput `json:"items"`
}

type PurchaseService struct {
	db *gorm.DB
}

func NewPurchaseService(db *gorm.DB) *PurchaseService {
	return &PurchaseService{db: db}
}

// CreatePurchaseOrder validates supplier and items, then writes header and
// items as one transaction. Created in draft status.
func (s *PurchaseService) CreatePurchaseOrder(in CreateInput) (*purchaseEntity.PurchaseOrder, error) {
	if in.SupplierID == 0 {
		return nil, errs.Validation("supplier_id", "is required")
	}
	if len(in.Items) == 0 {
		return nil, errs.Validation("items", "must not be empty")
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, errs.Validation("quantity", "must be positive")
		}
		if it.UnitCost <= 0 {
			return nil, errs.Validation("unit_cost", "must be positive")
		}
	}

	repo := purchaseRepo.NewPurchaseOrderRepository(s.db)
	ok, err := repo.SupplierExists(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.ErrNotFound
	}

	ids := make([]uint, 0, len(in.Items))
	for _, it := range in.Items {
		ids = append(ids, it.VariantID)
	}
	variants, err := catalogRepo.NewVariantRepository(s.db).BatchByIDs(ids)
	if err != nil {
		return nil, err
	}
	for _, it := range in.Items {
		if _, present := variants[it.VariantID]; !present {
			return nil, errs.ErrNotFound
		}
	}

	items := make([]purchaseEntity.PurchaseOrderItem, 0, len(in.Items))
	var total float64
	for _, it := range in.Items {
		lineTotal := float64(it.Quantity) * it.UnitCost
		total += lineTotal
		items = append(items, purchaseEntity.PurchaseOrderItem{
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
			TotalCost: lineTotal,
		})
	}

	po := &purchaseEntity.PurchaseOrder{
		SupplierID:   in.SupplierID,
		Status:       purchaseEntity.StatusDraft,
		ExpectedDate: in.ExpectedDate,
		TotalAmount:  total,
		Notes:        in.Notes,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return purchaseRepo.CreateWithItems(tx, po, items)
	})
	if err != nil {
		return nil, err
	}
	return po, nil
}

// GetPurchaseOrder returns the purchase order with its items.
func (s *PurchaseService) GetPurchaseOrder(id uint) (*purchaseEntity.PurchaseOrder, error) {
	return purchaseRepo.NewPurchaseOrderRepository(s.db).FindByIDWithItems(id)
}

// MarkOrdered moves draft -> ordered.
func (s *PurchaseService) MarkOrdered(id uint) error {
	return s.transition(id, purchaseEntity.StatusDraft, purchaseEntity.StatusOrdered)
}

// CancelPurchaseOrder moves draft or ordered -> cancelled.
func (s *PurchaseService) CancelPurchaseOrder(id uint) error {
	err := s.transition(id, purchaseEntity.StatusDraft, purchaseEntity.StatusCancelled)
	if errors.Is(err, errs.ErrInvalidTransition) {
		return s.transition(id, purchaseEntity.StatusOrdered, purchaseEntity.StatusCancelled)
	}
	return err
}

func (s *PurchaseService) transition(id uint, expected, next purchaseEntity.Status) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		rows, err := purchaseRepo.UpdateStatusIf(tx, id, expected, next)
		if err != nil {
			return err
		}
		if rows == 1 {
			return nil
		}
		if _, err := purchaseRepo.CurrentStatus(tx, id); err != nil {
			return err
		}
		return errs.ErrInvalidTransition
	})
}

// ReceivePurchaseOrder increments stock for every line exactly once and
// flips the order to received, all in one transaction. The conditional
// status flip runs first: a retried or double-clicked receipt sees the row
// already received and stops before touching the ledger.
func (s *PurchaseService) ReceivePurchaseOrder(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		rows, err := purchaseRepo.UpdateStatusIf(tx, id, purchaseEntity.StatusOrdered, purchaseEntity.StatusReceived)
		if err != nil {
			return err
		}
		if rows == 0 {
			current, serr := purchaseRepo.CurrentStatus(tx, id)
			if serr != nil {
				return serr
			}
			if current == purchaseEntity.StatusReceived {
				return errs.ErrAlreadyReceived
			}
			return errs.ErrInvalidTransition
		}

		locationID, err := inventoryRepo.DefaultLocationID(tx)
		if err != nil {
			return err
		}
		items, err := purchaseRepo.ItemsOf(tx, id)
		if err != nil {
			return err
		}
		for _, it := range items {
			// A never-stocked variant gets its ledger row here.
			if err := inventoryRepo.EnsureRecord(tx, it.VariantID, locationID); err != nil {
				return err
			}
			if err := inventoryRepo.AdjustQuantity(tx, it.VariantID, locationID, it.Quantity); err != nil {
				return err
			}
		}
		// Partial receiving is not modeled: received_qty = quantity.
		err = tx.Model(&purchaseEntity.PurchaseOrderItem{}).
			Where("order_id = ?", id).
			Update("received_qty", gorm.Expr("quantity")).Error
		if err != nil {
			return errs.Persistence("purchase order received qty", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	stockService.InvalidateSummary()
	return nil
}

// DeletePurchaseOrder removes a non-received order and its items.
func (s *PurchaseService) DeletePurchaseOrder(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return purchaseRepo.DeleteIfNotReceived(tx, id)
	})
}
